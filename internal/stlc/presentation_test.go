package stlc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingClipboard stores every write.
type recordingClipboard struct {
	writes []string
	err    error
}

func (c *recordingClipboard) WriteText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.writes = append(c.writes, text)
	return nil
}

func twoSectionBundle() ResultBundle {
	return NewResultBundle([]byte(`{
		"test_case_generation": {"test_cases": "TC1"},
		"test_data_generation": {"test_data": "D1"}
	}`))
}

func TestPresentation_CopySection(t *testing.T) {
	cb := &recordingClipboard{}
	p := NewPresentation(cb)
	p.Load(twoSectionBundle())

	token, err := p.CopySection("Test Data")
	require.NoError(t, err)

	assert.Equal(t, []string{"D1"}, cb.writes)
	assert.True(t, p.Copied(SectionTestData))
	assert.False(t, p.Copied(SectionTestCases))
	assert.False(t, p.CopiedAll())
	key, ok := token.Section()
	require.True(t, ok)
	assert.Equal(t, SectionTestData, key)

	sections := p.Sections()
	require.Len(t, sections, 2)
	assert.False(t, sections[0].Copied)
	assert.True(t, sections[1].Copied)

	assert.True(t, p.Expire(token))
	assert.False(t, p.Copied(SectionTestData))
	assert.False(t, p.Expire(token), "expiring twice is a no-op")
}

func TestPresentation_CopyIsIdempotentInContent(t *testing.T) {
	cb := &recordingClipboard{}
	p := NewPresentation(cb)
	p.Load(twoSectionBundle())

	_, err := p.CopySection("Test Cases")
	require.NoError(t, err)
	_, err = p.CopySection("Test Cases")
	require.NoError(t, err)
	_, _, err = p.CopyAll()
	require.NoError(t, err)
	_, _, err = p.CopyAll()
	require.NoError(t, err)

	require.Len(t, cb.writes, 4)
	assert.Equal(t, cb.writes[0], cb.writes[1])
	assert.Equal(t, cb.writes[2], cb.writes[3])
	assert.Equal(t, "Test Cases:\nTC1\n\nTest Data:\nD1", cb.writes[2])
}

func TestPresentation_CopyAllWithoutSectionsIsNoop(t *testing.T) {
	cb := &recordingClipboard{}
	p := NewPresentation(cb)
	p.Load(NewResultBundle([]byte(`{"bug_report_generation":{"structured_bug_reports":""}}`)))

	_, ok, err := p.CopyAll()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, cb.writes)
	assert.False(t, p.CopiedAll())
}

func TestPresentation_RecopyRestartsOwnTimerOnly(t *testing.T) {
	p := NewPresentation(&recordingClipboard{})
	p.Load(twoSectionBundle())

	first, err := p.CopySection("Test Cases")
	require.NoError(t, err)
	other, err := p.CopySection("Test Data")
	require.NoError(t, err)
	all, ok, err := p.CopyAll()
	require.NoError(t, err)
	require.True(t, ok)
	second, err := p.CopySection("Test Cases")
	require.NoError(t, err)

	// The superseded timer for "Test Cases" must not clear the re-armed flag.
	assert.False(t, p.Expire(first))
	assert.True(t, p.Copied(SectionTestCases))

	// Other flags are independent.
	assert.True(t, p.Expire(other))
	assert.True(t, p.Copied(SectionTestCases))
	assert.True(t, p.CopiedAll())

	assert.True(t, p.Expire(all))
	assert.False(t, p.CopiedAll())
	assert.True(t, p.Copied(SectionTestCases))

	assert.True(t, p.Expire(second))
	assert.False(t, p.Copied(SectionTestCases))
}

func TestPresentation_StaleTimerAfterBundleReplacement(t *testing.T) {
	p := NewPresentation(&recordingClipboard{})
	p.Load(twoSectionBundle())

	old, err := p.CopySection("Test Cases")
	require.NoError(t, err)

	p.Load(twoSectionBundle())
	fresh, err := p.CopySection("Test Cases")
	require.NoError(t, err)

	assert.False(t, p.Expire(old), "timer from a superseded bundle must be ignored")
	assert.True(t, p.Copied(SectionTestCases))
	assert.True(t, p.Expire(fresh))

	stale, err := p.CopySection("Test Data")
	require.NoError(t, err)
	p.Clear()
	assert.False(t, p.Expire(stale))
	assert.Empty(t, p.Sections())
	assert.False(t, p.Copied(SectionTestData))
}

func TestPresentation_CopyErrors(t *testing.T) {
	cb := &recordingClipboard{}
	p := NewPresentation(cb)
	p.Load(NewResultBundle([]byte(`{"test_case_generation":{"test_cases":"TC1"}}`)))

	_, err := p.CopySection("Unknown")
	assert.ErrorIs(t, err, ErrSectionNotRendered)

	_, err = p.CopySection("Test Data")
	assert.ErrorIs(t, err, ErrSectionNotRendered)

	cb.err = errors.New("no clipboard utility")
	_, err = p.CopySection("Test Cases")
	require.Error(t, err)
	assert.False(t, p.Copied(SectionTestCases))

	_, ok, err := p.CopyAll()
	require.Error(t, err)
	assert.False(t, ok)
	assert.False(t, p.CopiedAll())
}
