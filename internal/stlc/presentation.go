package stlc

import (
	"errors"
	"fmt"

	"stlcctl/pkg/logging"
)

const presentationSubsystem = "Presentation"

// ErrSectionNotRendered is returned when a copy targets a label that has no
// section in the current bundle.
var ErrSectionNotRendered = errors.New("section not rendered")

// copyAllSlot is the flag slot used by CopyAll.
const copyAllSlot = SectionCount

type copyFlag struct {
	on  bool
	seq uint64
}

// CopyToken identifies one "copied" flag activation. Passing it to Expire
// clears the flag unless the bundle was replaced or the flag re-armed since.
type CopyToken struct {
	epoch uint64
	slot  int
	seq   uint64
}

// All reports whether the token belongs to the bundle-wide flag.
func (t CopyToken) All() bool {
	return t.slot == copyAllSlot
}

// Section returns the section the token belongs to. ok is false for the
// bundle-wide token.
func (t CopyToken) Section() (key SectionKey, ok bool) {
	if t.slot < 0 || t.slot >= SectionCount {
		return 0, false
	}
	return SectionKey(t.slot), true
}

// Presentation is the result side of the session: the derived sections of the
// current bundle and their transient "copied" flags.
type Presentation struct {
	clipboard Clipboard
	epoch     uint64
	seq       uint64
	sections  []DisplaySection
	flags     [SectionCount + 1]copyFlag
}

// NewPresentation creates an empty presentation writing to clipboard.
func NewPresentation(clipboard Clipboard) *Presentation {
	return &Presentation{clipboard: clipboard}
}

// Load replaces the current bundle. Flags are reset and timers armed for the
// previous bundle become no-ops.
func (p *Presentation) Load(bundle ResultBundle) {
	p.epoch++
	p.sections = DeriveSections(bundle)
	p.flags = [SectionCount + 1]copyFlag{}
}

// Clear drops the current bundle.
func (p *Presentation) Clear() {
	p.epoch++
	p.sections = nil
	p.flags = [SectionCount + 1]copyFlag{}
}

// Sections returns the rendered sections with their copied flags.
func (p *Presentation) Sections() []DisplaySection {
	out := make([]DisplaySection, len(p.sections))
	for i, s := range p.sections {
		s.Copied = p.flags[s.Key].on
		out[i] = s
	}
	return out
}

// Copied reports whether the section's copied flag is set.
func (p *Presentation) Copied(key SectionKey) bool {
	if !key.valid() {
		return false
	}
	return p.flags[key].on
}

// CopiedAll reports whether the bundle-wide copied flag is set.
func (p *Presentation) CopiedAll() bool {
	return p.flags[copyAllSlot].on
}

// CopySection writes the content of the section titled label to the
// clipboard and raises its copied flag.
func (p *Presentation) CopySection(label string) (CopyToken, error) {
	key, ok := SectionByLabel(label)
	if !ok {
		return CopyToken{}, fmt.Errorf("%w: %q", ErrSectionNotRendered, label)
	}
	for _, s := range p.sections {
		if s.Key != key {
			continue
		}
		if err := p.clipboard.WriteText(s.Content); err != nil {
			return CopyToken{}, fmt.Errorf("failed to copy %s: %w", label, err)
		}
		logging.Debug(presentationSubsystem, "Copied section %q (%d bytes)", label, len(s.Content))
		return p.arm(int(key)), nil
	}
	return CopyToken{}, fmt.Errorf("%w: %q", ErrSectionNotRendered, label)
}

// CopyAll writes every rendered section as one clipboard entry. With no
// sections it does nothing and returns ok=false.
func (p *Presentation) CopyAll() (token CopyToken, ok bool, err error) {
	if len(p.sections) == 0 {
		return CopyToken{}, false, nil
	}
	text := FormatAll(p.sections)
	if err := p.clipboard.WriteText(text); err != nil {
		return CopyToken{}, false, fmt.Errorf("failed to copy all sections: %w", err)
	}
	logging.Debug(presentationSubsystem, "Copied %d sections (%d bytes)", len(p.sections), len(text))
	return p.arm(copyAllSlot), true, nil
}

// Expire clears the flag armed by token. It returns false when the token is
// stale: the bundle changed or the flag was re-armed after token was issued.
func (p *Presentation) Expire(token CopyToken) bool {
	if token.epoch != p.epoch || token.slot < 0 || token.slot >= len(p.flags) {
		return false
	}
	flag := &p.flags[token.slot]
	if !flag.on || flag.seq != token.seq {
		return false
	}
	flag.on = false
	return true
}

func (p *Presentation) arm(slot int) CopyToken {
	p.seq++
	p.flags[slot] = copyFlag{on: true, seq: p.seq}
	return CopyToken{epoch: p.epoch, slot: slot, seq: p.seq}
}
