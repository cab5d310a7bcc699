package utils

import (
    "strings"
    "testing"
)

func TestSummary(test *testing.T){
    results := []Result{
        Result{Name: "tone", Passed: true, Detail: "260.7hz"},
        Result{Name: "silence", Passed: false, Detail: "sample 3 was 0.1"},
    }

    text := Summary("apu", results)
    for _, expected := range []string{"tone", "silence", "260.7hz", "1/2 passed"} {
        if !strings.Contains(text, expected) {
            test.Fatalf("expected '%v' in summary\n%v", expected, text)
        }
    }

    if AllPassed(results) {
        test.Fatalf("one result failed")
    }
    if !AllPassed(results[:1]) {
        test.Fatalf("the first result passed")
    }
}
