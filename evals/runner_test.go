package evals

import (
	"path/filepath"
	"strings"
	"testing"
)

// MockToolSelector implements ToolSelector for testing
type MockToolSelector struct {
	// Responses maps input strings to tool selections
	Responses map[string]struct {
		Tool string
		Args map[string]interface{}
	}
	// DefaultTool is returned if input isn't in Responses
	DefaultTool string
}

func (m *MockToolSelector) SelectTool(input string) (string, map[string]interface{}, error) {
	if resp, ok := m.Responses[input]; ok {
		return resp.Tool, resp.Args, nil
	}
	return m.DefaultTool, nil, nil
}

// PerfectToolSelector returns the expected tool for each test
type PerfectToolSelector struct {
	suite *ToolSelectionSuite
}

func (p *PerfectToolSelector) SelectTool(input string) (string, map[string]interface{}, error) {
	for _, test := range p.suite.Tests {
		if test.Input == input {
			return test.ExpectedTool, test.ExpectedArgs, nil
		}
	}
	return "", nil, nil
}

func TestLoadToolSelectionSuite(t *testing.T) {
	suite, err := LoadToolSelectionSuite(filepath.Join(".", "tool_selection.json"))
	if err != nil {
		t.Fatalf("Failed to load tool selection suite: %v", err)
	}

	if suite.Name == "" {
		t.Error("Suite name should not be empty")
	}

	if len(suite.Tests) == 0 {
		t.Error("Suite should have tests")
	}

	for _, test := range suite.Tests {
		if test.ID == "" {
			t.Error("Test ID should not be empty")
		}
		if test.Input == "" {
			t.Errorf("Test %s input should not be empty", test.ID)
		}
		if test.ExpectedTool == "" {
			t.Errorf("Test %s expected tool should not be empty", test.ID)
		}
	}
}

func TestLoadConfusionPairSuite(t *testing.T) {
	suite, err := LoadConfusionPairSuite(filepath.Join(".", "confusion_pairs.json"))
	if err != nil {
		t.Fatalf("Failed to load confusion pair suite: %v", err)
	}

	if suite.Name == "" {
		t.Error("Suite name should not be empty")
	}

	if len(suite.Pairs) == 0 {
		t.Error("Suite should have confusion pairs")
	}

	for _, pair := range suite.Pairs {
		if pair.ID == "" {
			t.Error("Pair ID should not be empty")
		}
		if len(pair.Tools) < 2 {
			t.Errorf("Pair %s should have at least 2 tools", pair.ID)
		}
		if len(pair.Tests) == 0 {
			t.Errorf("Pair %s should have tests", pair.ID)
		}
	}
}

func TestLoadArgumentSuite(t *testing.T) {
	suite, err := LoadArgumentSuite(filepath.Join(".", "argument_correctness.json"))
	if err != nil {
		t.Fatalf("Failed to load argument suite: %v", err)
	}

	if suite.Name == "" {
		t.Error("Suite name should not be empty")
	}

	if len(suite.Tests) == 0 {
		t.Error("Suite should have tests")
	}

	if suite.ValidationRules.PathFormat == "" {
		t.Error("Suite should document the page path format")
	}
	if suite.ValidationRules.OverwritePolicy == "" {
		t.Error("Suite should document the overwrite policy")
	}

	for _, test := range suite.Tests {
		if test.ID == "" {
			t.Error("Test ID should not be empty")
		}
		if test.Tool == "" {
			t.Errorf("Test %s tool should not be empty", test.ID)
		}
		if test.Input == "" {
			t.Errorf("Test %s input should not be empty", test.ID)
		}
	}
}

func TestEvaluateToolSelection(t *testing.T) {
	suite, err := LoadToolSelectionSuite(filepath.Join(".", "tool_selection.json"))
	if err != nil {
		t.Fatalf("Failed to load suite: %v", err)
	}

	// Perfect selector should get 100% accuracy
	perfectSelector := &PerfectToolSelector{suite: suite}
	metrics, results := EvaluateToolSelection(suite, perfectSelector)

	if metrics.TotalTests != len(suite.Tests) {
		t.Errorf("Total tests: expected %d, got %d", len(suite.Tests), metrics.TotalTests)
	}

	if metrics.Accuracy != 1.0 {
		t.Errorf("Perfect selector should have 100%% accuracy, got %.1f%%", metrics.Accuracy*100)
	}

	if len(results) != len(suite.Tests) {
		t.Errorf("Should have result for each test")
	}

	for _, result := range results {
		if !result.Passed {
			t.Errorf("Test %s should pass with perfect selector", result.TestID)
		}
	}
}

func TestEvaluateToolSelectionWithWrongAnswers(t *testing.T) {
	suite := &ToolSelectionSuite{
		Name: "Test Suite",
		Tests: []ToolSelectionTest{
			{
				ID:           "test-001",
				Category:     "listing",
				Input:        "what pages does the wiki have",
				ExpectedTool: "get_pages",
				NotTools:     []string{"get_page"},
			},
			{
				ID:           "test-002",
				Category:     "reading",
				Input:        "show me the /Sandbox page",
				ExpectedTool: "get_page",
				ExpectedArgs: map[string]interface{}{"path": "/Sandbox"},
			},
		},
	}

	// Mock selector that always returns wrong tool
	wrongSelector := &MockToolSelector{
		DefaultTool: "create_page",
	}

	metrics, results := EvaluateToolSelection(suite, wrongSelector)

	if metrics.PassedTests != 0 {
		t.Errorf("Wrong selector should have 0 passed tests, got %d", metrics.PassedTests)
	}

	if metrics.FailedTests != 2 {
		t.Errorf("Wrong selector should have 2 failed tests, got %d", metrics.FailedTests)
	}

	if metrics.Accuracy != 0 {
		t.Errorf("Wrong selector should have 0%% accuracy, got %.1f%%", metrics.Accuracy*100)
	}

	for _, result := range results {
		if result.Passed {
			t.Errorf("Test %s should not pass with wrong selector", result.TestID)
		}
		if len(result.Errors) == 0 {
			t.Errorf("Test %s should have errors", result.TestID)
		}
	}
}

func TestEvaluateToolSelectionForbiddenTool(t *testing.T) {
	suite := &ToolSelectionSuite{
		Name: "Forbidden Tool Suite",
		Tests: []ToolSelectionTest{
			{
				ID:           "test-001",
				Category:     "reading",
				Input:        "open the page with id 65f1a0b2c3",
				ExpectedTool: "get_page_by_id",
				NotTools:     []string{"get_page"},
			},
		},
	}

	// Selector picks the explicitly forbidden sibling tool
	badSelector := &MockToolSelector{DefaultTool: "get_page"}

	metrics, results := EvaluateToolSelection(suite, badSelector)

	if metrics.PassedTests != 0 {
		t.Errorf("Expected 0 passed tests, got %d", metrics.PassedTests)
	}

	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}

	foundForbidden := false
	for _, e := range results[0].Errors {
		if strings.Contains(e, "forbidden") {
			foundForbidden = true
		}
	}
	if !foundForbidden {
		t.Errorf("Should flag forbidden tool selection, errors: %v", results[0].Errors)
	}
}

func TestEvaluateConfusionPairs(t *testing.T) {
	suite := &ConfusionPairSuite{
		Name: "Test Confusion Pairs",
		Pairs: []ConfusionPair{
			{
				ID:             "get_page_vs_get_page_by_id",
				Tools:          []string{"get_page", "get_page_by_id"},
				Disambiguation: "get_page takes a wiki path, get_page_by_id takes an opaque identifier",
				Tests: []ConfusionPairTest{
					{
						Input:    "read the page at /Projects/Roadmap",
						Expected: "get_page",
						Reason:   "Input names a path",
					},
					{
						Input:    "read the page with id 65f1a0b2c3d4e5f6a7b8c9d0",
						Expected: "get_page_by_id",
						Reason:   "Input names an identifier",
					},
				},
			},
		},
	}

	// Perfect selector for confusion pairs
	perfectSelector := &MockToolSelector{
		Responses: map[string]struct {
			Tool string
			Args map[string]interface{}
		}{
			"read the page at /Projects/Roadmap": {
				Tool: "get_page",
				Args: map[string]interface{}{"path": "/Projects/Roadmap"},
			},
			"read the page with id 65f1a0b2c3d4e5f6a7b8c9d0": {
				Tool: "get_page_by_id",
				Args: map[string]interface{}{"id": "65f1a0b2c3d4e5f6a7b8c9d0"},
			},
		},
	}

	metrics, results := EvaluateConfusionPairs(suite, perfectSelector)

	if metrics.TotalTests != 2 {
		t.Errorf("Expected 2 tests, got %d", metrics.TotalTests)
	}

	if metrics.Accuracy != 1.0 {
		t.Errorf("Perfect selector should have 100%% accuracy, got %.1f%%", metrics.Accuracy*100)
	}

	for _, result := range results {
		if !result.Passed {
			t.Errorf("Test should pass: %s", result.TestInput)
		}
	}
}

func TestEvaluateConfusionPairsWithShippedSuite(t *testing.T) {
	suite, err := LoadConfusionPairSuite(filepath.Join(".", "confusion_pairs.json"))
	if err != nil {
		t.Fatalf("Failed to load suite: %v", err)
	}

	responses := make(map[string]struct {
		Tool string
		Args map[string]interface{}
	})
	for _, pair := range suite.Pairs {
		for _, test := range pair.Tests {
			responses[test.Input] = struct {
				Tool string
				Args map[string]interface{}
			}{Tool: test.Expected}
		}
	}

	metrics, _ := EvaluateConfusionPairs(suite, &MockToolSelector{Responses: responses})

	if metrics.Accuracy != 1.0 {
		t.Errorf("Perfect selector should have 100%% accuracy, got %.1f%%", metrics.Accuracy*100)
	}
}

func TestEvaluateArguments(t *testing.T) {
	suite := &ArgumentSuite{
		Name: "Test Arguments",
		Tests: []ArgumentTest{
			{
				ID:           "args-001",
				Tool:         "create_page",
				Input:        "create a page at /Notes with the text hello",
				RequiredArgs: []string{"path", "body"},
				ExpectedArgs: map[string]interface{}{
					"path": "/Notes",
					"body": "hello",
				},
				ForbiddenArgs: []string{"id"},
			},
		},
	}

	// Correct selector
	correctSelector := &MockToolSelector{
		Responses: map[string]struct {
			Tool string
			Args map[string]interface{}
		}{
			"create a page at /Notes with the text hello": {
				Tool: "create_page",
				Args: map[string]interface{}{
					"path": "/Notes",
					"body": "hello",
				},
			},
		},
	}

	metrics, results := EvaluateArguments(suite, correctSelector)

	if metrics.TotalTests != 1 {
		t.Errorf("Expected 1 test, got %d", metrics.TotalTests)
	}

	if metrics.PassedTests != 1 {
		t.Errorf("Expected 1 passed test, got %d", metrics.PassedTests)
	}

	if len(results) > 0 && !results[0].Passed {
		t.Errorf("Test should pass: missing=%v, wrong=%v, forbidden=%v",
			results[0].MissingArgs, results[0].WrongArgs, results[0].ForbiddenHit)
	}
}

func TestEvaluateArgumentsWithForbidden(t *testing.T) {
	suite := &ArgumentSuite{
		Name: "Test Forbidden Args",
		Tests: []ArgumentTest{
			{
				ID:            "args-001",
				Tool:          "get_page",
				Input:         "show the /Sandbox page",
				RequiredArgs:  []string{"path"},
				ExpectedArgs:  map[string]interface{}{"path": "/Sandbox"},
				ForbiddenArgs: []string{"id"},
			},
		},
	}

	// Selector that includes forbidden arg
	badSelector := &MockToolSelector{
		Responses: map[string]struct {
			Tool string
			Args map[string]interface{}
		}{
			"show the /Sandbox page": {
				Tool: "get_page",
				Args: map[string]interface{}{
					"path": "/Sandbox",
					"id":   "65f1a0b2c3", // forbidden!
				},
			},
		},
	}

	metrics, results := EvaluateArguments(suite, badSelector)

	if metrics.PassedTests != 0 {
		t.Errorf("Expected 0 passed tests (forbidden arg used), got %d", metrics.PassedTests)
	}

	if len(results) > 0 && len(results[0].ForbiddenHit) == 0 {
		t.Error("Should flag forbidden arg usage")
	}
}

func TestEvaluateArgumentsWrongTool(t *testing.T) {
	suite := &ArgumentSuite{
		Name: "Wrong Tool",
		Tests: []ArgumentTest{
			{
				ID:           "args-001",
				Tool:         "edit_page",
				Input:        "replace the /Sandbox page with new text",
				RequiredArgs: []string{"path", "body"},
			},
		},
	}

	badSelector := &MockToolSelector{DefaultTool: "get_page"}

	metrics, results := EvaluateArguments(suite, badSelector)

	if metrics.PassedTests != 0 {
		t.Errorf("Expected 0 passed tests, got %d", metrics.PassedTests)
	}
	if len(results) != 1 || results[0].Passed {
		t.Error("Wrong tool should fail the test")
	}
}

func TestCompareValues(t *testing.T) {
	tests := []struct {
		name     string
		expected interface{}
		actual   interface{}
		want     bool
	}{
		{"equal strings", "/Sandbox", "/Sandbox", true},
		{"different strings", "/Sandbox", "/Notes", false},
		{"int vs float64", 1, float64(1), true},
		{"equal slices", []string{"a", "b"}, []string{"a", "b"}, true},
		{"different slices", []string{"a", "b"}, []string{"a", "c"}, false},
		{"nil values", nil, nil, true},
		{"nil vs value", nil, "test", false},
		{"equal bools", true, true, true},
		{"different bools", true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compareValues(tt.expected, tt.actual)
			if got != tt.want {
				t.Errorf("compareValues(%v, %v) = %v, want %v", tt.expected, tt.actual, got, tt.want)
			}
		})
	}
}

func TestFormatMetrics(t *testing.T) {
	metrics := &EvalMetrics{
		TotalTests:  10,
		PassedTests: 8,
		FailedTests: 2,
		Accuracy:    0.8,
		ByCategory: map[string]*CategoryMetrics{
			"listing": {Total: 5, Passed: 4, Failed: 1},
			"writing": {Total: 5, Passed: 4, Failed: 1},
		},
		FailedDetails: []string{
			"[test-1] input: error",
			"[test-2] input: error",
		},
	}

	output := FormatMetrics(metrics, "Test Suite")

	if output == "" {
		t.Error("FormatMetrics should return non-empty string")
	}

	if !strings.Contains(output, "80") { // 80%
		t.Error("Should show accuracy percentage")
	}
	if !strings.Contains(output, "listing") {
		t.Error("Should show category breakdown")
	}
	if !strings.Contains(output, "Failed Tests") {
		t.Error("Should show failed tests section")
	}
}

func TestFormatMetricsTruncatesDetails(t *testing.T) {
	metrics := newMetrics()
	metrics.TotalTests = 15
	metrics.FailedTests = 15
	for i := range 15 {
		metrics.FailedDetails = append(metrics.FailedDetails,
			"[test] detail "+strings.Repeat("x", i))
	}
	metrics.finish()

	output := FormatMetrics(metrics, "Truncated")

	if !strings.Contains(output, "showing first 10 of 15") {
		t.Errorf("Should announce truncation, got:\n%s", output)
	}
	if strings.Count(output, "[test]") != 10 {
		t.Errorf("Should list exactly 10 details, got %d", strings.Count(output, "[test]"))
	}
}

func TestLoadAllEvals(t *testing.T) {
	toolSelection, confusionPairs, arguments, err := LoadAllEvals(".")
	if err != nil {
		t.Fatalf("Failed to load all evals: %v", err)
	}

	if toolSelection == nil {
		t.Error("Tool selection suite should not be nil")
	}
	if confusionPairs == nil {
		t.Error("Confusion pairs suite should not be nil")
	}
	if arguments == nil {
		t.Error("Arguments suite should not be nil")
	}

	total := len(toolSelection.Tests)
	for _, pair := range confusionPairs.Pairs {
		total += len(pair.Tests)
	}
	total += len(arguments.Tests)

	t.Logf("Loaded %d total evaluation tests", total)
}
