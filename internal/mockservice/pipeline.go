package mockservice

import (
	"fmt"
	"strings"
)

// Input is the body accepted by POST /chat.
type Input struct {
	Requirements        *string `json:"requirements" binding:"required"`
	UserStories         *string `json:"user_stories"`
	CodeDiffs           *string `json:"code_diffs"`
	PreviousTestResults *string `json:"previous_test_results"`
}

// Marker words in the requirements that steer the simulated run.
const (
	MarkerSelfHealing    = "simulated_self_healing_needed"
	MarkerBugPresent     = "simulated_bug_present"
	MarkerServiceFailure = "simulated_service_failure"
)

// NodeOutput is the state update produced by one pipeline node.
type NodeOutput map[string]interface{}

// pipelineState carries values between nodes.
type pipelineState struct {
	requirements        string
	userStories         string
	codeDiffs           string
	previousTestResults string

	testCases         string
	automatedScripts  string
	impactLevel       string
	executionResults  string
	issueLog          string
	structuredReports string
	summaryReport     string
}

// RunPipeline executes the deterministic stand-in of the STLC graph and
// returns the last output of every node that ran, keyed by node name.
//
// Flow: test cases → test data → scripts → (change impact, only with diffs;
// high impact regenerates test cases once) → simulated execution →
// (self-healing, only for locator/API failures) → bug reports → summary →
// release readiness.
func RunPipeline(in Input) map[string]NodeOutput {
	st := &pipelineState{
		requirements:        deref(in.Requirements),
		userStories:         deref(in.UserStories),
		codeDiffs:           deref(in.CodeDiffs),
		previousTestResults: deref(in.PreviousTestResults),
	}
	out := make(map[string]NodeOutput)

	out["test_case_generation"] = st.generateTestCases("")
	out["test_data_generation"] = st.generateTestData()
	out["test_script_automation"] = st.automateScripts()

	if st.codeDiffs != "" {
		out["change_impact_analysis"] = st.analyzeChangeImpact()
		if st.impactLevel == "high" {
			out["test_case_generation"] = st.generateTestCases("Regenerated after high change impact.")
		}
	}

	out["simulate_test_execution"] = st.simulateExecution()
	if st.needsSelfHealing() {
		out["self_healing_scripts"] = st.healScripts()
	}
	out["bug_report_generation"] = st.generateBugReports()
	out["test_summary_reporting"] = st.summarize()
	out["release_readiness_advisory"] = st.adviseReadiness()
	return out
}

func (st *pipelineState) generateTestCases(note string) NodeOutput {
	var b strings.Builder
	b.WriteString("| ID | Title | Steps | Expected Result |\n|----|-------|-------|-----------------|\n")
	for i, item := range requirementItems(st.requirements, st.userStories) {
		fmt.Fprintf(&b, "| TC-%03d | Verify %s | Exercise the behaviour described | %s holds |\n", i+1, item, item)
	}
	if note != "" {
		b.WriteString("\n" + note + "\n")
	}
	st.testCases = b.String()
	return NodeOutput{
		"test_cases":     st.testCases,
		"current_status": "Test cases generated.",
		"messages":       []string{fmt.Sprintf("Generated %d lines of test cases.", lineCount(st.testCases))},
	}
}

func (st *pipelineState) generateTestData() NodeOutput {
	var b strings.Builder
	b.WriteString("```json\n[\n")
	items := requirementItems(st.requirements, st.userStories)
	for i := range items {
		sep := ","
		if i == len(items)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  {\"test_case\": \"TC-%03d\", \"valid_email\": \"user%d@example.com\", \"amount\": %d}%s\n", i+1, i+1, (i+1)*100%1001, sep)
	}
	b.WriteString("]\n```\n")
	data := b.String()
	return NodeOutput{
		"test_data":      data,
		"current_status": "Test data generated.",
		"messages":       []string{fmt.Sprintf("Generated %d lines of test data.", lineCount(data))},
	}
}

func (st *pipelineState) automateScripts() NodeOutput {
	var b strings.Builder
	b.WriteString("```python\nfrom playwright.sync_api import Page, expect\n")
	for i := range requirementItems(st.requirements, st.userStories) {
		fmt.Fprintf(&b, "\n\ndef test_tc_%03d(page: Page):\n    page.goto(\"/\")\n    expect(page).to_have_title(\"App\")\n", i+1)
	}
	b.WriteString("```\n")
	st.automatedScripts = b.String()
	return NodeOutput{
		"automated_scripts": st.automatedScripts,
		"current_status":    "Test scripts automated.",
		"messages":          []string{fmt.Sprintf("Automated %d lines of scripts.", lineCount(st.automatedScripts))},
	}
}

func (st *pipelineState) analyzeChangeImpact() NodeOutput {
	added, removed, newFiles := diffStats(st.codeDiffs)
	changed := added + removed

	level := "low"
	var recommendations []string
	switch {
	case changed > 50:
		level = "high"
		recommendations = append(recommendations, "Extensive re-testing of affected functionalities is required.")
	case changed > 10:
		level = "medium"
		recommendations = append(recommendations, "Re-run regression tests around the changed modules.")
	default:
		recommendations = append(recommendations, "Focus on visual regression or specific UI interaction tests.")
	}
	if newFiles > 0 {
		level = "high"
		recommendations = append(recommendations, "New test cases and test data are needed for the new functionality.")
	}
	st.impactLevel = level

	analysis := map[string]interface{}{
		"impact_level":    level,
		"affected_areas":  affectedFiles(st.codeDiffs),
		"recommendations": recommendations,
	}
	return NodeOutput{
		"change_impact_analysis": analysis,
		"current_status":         "Change impact analysis completed.",
		"messages":               []string{fmt.Sprintf("Impact: %s. Recommendations: %s", level, strings.Join(recommendations, ", "))},
	}
}

func (st *pipelineState) simulateExecution() NodeOutput {
	lower := strings.ToLower(st.requirements)
	switch {
	case strings.Contains(lower, MarkerSelfHealing):
		st.executionResults = "FAILURE: Login button not found (was 'btn-login', expected 'main-login-btn'). Test 2 failed: API endpoint /users not found."
		st.issueLog = "User login failed.\nAPI call failed."
	case strings.Contains(lower, MarkerBugPresent):
		st.executionResults = "FAILURE: Test 'search' failed. Test 'checkout' failed."
		st.issueLog = "Search bar issue.\nCheckout button issue."
	default:
		st.executionResults = "All simulated tests passed successfully. No critical issues detected."
		st.issueLog = "No major issues logged from this simulated run."
	}
	return NodeOutput{
		"simulated_execution_results": st.executionResults,
		"bug_reports_raw_logs":        st.issueLog,
		"current_status":              "Test execution simulated.",
		"messages":                    []string{"Simulated test execution. Check internal logs for details."},
	}
}

func (st *pipelineState) needsSelfHealing() bool {
	results := strings.ToLower(st.executionResults)
	failed := strings.Contains(results, "failure") || strings.Contains(results, "error")
	uiOrAPI := strings.Contains(results, "button") || strings.Contains(results, "api endpoint") || strings.Contains(results, "locator")
	return failed && uiOrAPI
}

func (st *pipelineState) healScripts() NodeOutput {
	healed := strings.ReplaceAll(st.automatedScripts, "page.goto(\"/\")", "page.goto(\"/\")\n    page.locator(\"#main-login-btn\").wait_for()")
	return NodeOutput{
		"self_healed_scripts": healed,
		"current_status":      "Test scripts self-healed.",
		"messages":            []string{"Test scripts updated by self-healing agent."},
	}
}

func (st *pipelineState) generateBugReports() NodeOutput {
	if st.issueLog == "" || strings.Contains(strings.ToLower(st.issueLog), "no major issues logged") {
		st.structuredReports = "No significant issues to report from logs."
		return NodeOutput{
			"structured_bug_reports": st.structuredReports,
			"current_status":         "Bug report generation skipped (no issues).",
			"messages":               []string{"No issues detected for bug report generation."},
		}
	}

	var b strings.Builder
	for i, line := range nonEmptyLines(st.issueLog) {
		fmt.Fprintf(&b, "### BUG-%03d: %s\n- Severity: High\n- Steps to reproduce: run the affected simulated test\n- Expected: test passes\n- Actual: %s\n\n", i+1, strings.TrimSuffix(line, "."), line)
	}
	st.structuredReports = strings.TrimSpace(b.String())
	return NodeOutput{
		"structured_bug_reports": st.structuredReports,
		"current_status":         "Bug reports generated.",
		"messages":               []string{"Generated bug reports."},
	}
}

func (st *pipelineState) summarize() NodeOutput {
	var b strings.Builder
	b.WriteString("## Test Summary Report\n\n")
	fmt.Fprintf(&b, "- Execution: %s\n", st.executionResults)
	fmt.Fprintf(&b, "- Bugs: %s\n", firstLine(st.structuredReports))
	b.WriteString("- Coverage: Simulated test coverage: 85% code, 70% requirements.\n")
	if st.previousTestResults != "" {
		fmt.Fprintf(&b, "- Previous run: %s\n", firstLine(st.previousTestResults))
	}
	st.summaryReport = b.String()
	return NodeOutput{
		"test_summary_report": st.summaryReport,
		"current_status":      "Test summary report generated.",
		"messages":            []string{"Test summary report created."},
	}
}

func (st *pipelineState) adviseReadiness() NodeOutput {
	advice := "Release readiness: GO. All simulated tests passed and no open bugs were reported."
	if strings.Contains(strings.ToLower(st.executionResults), "failure") {
		advice = "Release readiness: NO-GO. Simulated execution reported failures; resolve the open bug reports and re-run the suite."
	}
	return NodeOutput{
		"release_readiness_advice": advice,
		"current_status":           "Release readiness assessed.",
		"messages":                 []string{"Release readiness assessment complete."},
	}
}

// requirementItems splits requirements and user stories into short items.
func requirementItems(texts ...string) []string {
	var items []string
	for _, text := range texts {
		for _, line := range nonEmptyLines(strings.ReplaceAll(text, ". ", ".\n")) {
			items = append(items, strings.TrimSuffix(strings.TrimLeft(line, "-* "), "."))
		}
	}
	if len(items) == 0 {
		items = []string{"the requirements"}
	}
	return items
}

func diffStats(diff string) (added, removed, newFiles int) {
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "new file mode"):
			newFiles++
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return added, removed, newFiles
}

func affectedFiles(diff string) []string {
	files := []string{}
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "+++ ") {
			name := strings.TrimPrefix(strings.TrimPrefix(line, "+++ "), "b/")
			if name != "/dev/null" {
				files = append(files, name)
			}
		}
	}
	return files
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func firstLine(text string) string {
	if lines := nonEmptyLines(text); len(lines) > 0 {
		return lines[0]
	}
	return ""
}

func lineCount(text string) int {
	return len(strings.Split(strings.TrimRight(text, "\n"), "\n"))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
