package lib

import (
    "testing"
)

/* a sample rate slightly slower than the sequencer so every tick advances exactly one step */
func oneStepSampleRate(divider uint16) float64 {
    return CPUFrequency / (float64(divider + 2) * 1.000001)
}

func makeTestTriangle(divider uint16) Triangle {
    triangle := MakeTriangle("test")
    triangle.SetDivider(divider)
    triangle.SetEnabled(true)
    triangle.SetLinearReloadValue(127)
    triangle.ReloadLinearCounter()
    triangle.LoadLengthCounter(254)
    return triangle
}

func TestTriangleStartsAtZero(test *testing.T){
    triangle := MakeTriangle("test")
    if triangle.Output() != 0 {
        test.Fatalf("a new triangle should output 0 but was %v", triangle.Output())
    }
    if triangle.Tick(testSampleRate, CPUFrequency) != 0 {
        test.Fatalf("a silent new triangle should tick 0")
    }
}

func TestTriangleSequence(test *testing.T){
    const divider = 100
    rate := oneStepSampleRate(divider)
    triangle := makeTestTriangle(divider)
    triangle.SequenceIndex = 31

    expected := []float32{
        15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
        0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
    }

    for round := 0; round < 3; round++ {
        for i, value := range expected {
            sample := triangle.Tick(rate, CPUFrequency)
            if sample != value {
                test.Fatalf("round %v step %v: expected %v but got %v", round, i, value, sample)
            }
            if triangle.SequenceIndex != i {
                test.Fatalf("round %v step %v: sequence index was %v", round, i, triangle.SequenceIndex)
            }
        }
    }
}

func TestTriangleSilenceHoldsOutput(test *testing.T){
    const divider = 100
    rate := oneStepSampleRate(divider)
    triangle := makeTestTriangle(divider)

    var last float32
    for i := 0; i < 7; i++ {
        last = triangle.Tick(rate, CPUFrequency)
    }
    if last == 0 {
        test.Fatalf("expected a non zero level after 7 steps")
    }

    triangle.SetEnabled(false)
    index := triangle.SequenceIndex
    for i := 0; i < 100; i++ {
        sample := triangle.Tick(rate, CPUFrequency)
        if sample != last {
            test.Fatalf("silenced triangle should hold %v but produced %v", last, sample)
        }
    }
    if triangle.SequenceIndex != index {
        test.Fatalf("silenced triangle moved from %v to %v", index, triangle.SequenceIndex)
    }
}

func TestTriangleSilentConditions(test *testing.T){
    triangle := makeTestTriangle(100)
    if triangle.Silent() {
        test.Fatalf("configured triangle should not be silent")
    }

    triangle.SetDivider(1)
    if !triangle.Silent() {
        test.Fatalf("divider 1 is below the triangle minimum")
    }
    triangle.SetDivider(TriangleMinimumDivider)
    if triangle.Silent() {
        test.Fatalf("divider 2 is allowed")
    }

    for i := 0; i < 128; i++ {
        triangle.QuarterFrame()
    }
    if !triangle.Silent() {
        test.Fatalf("an exhausted linear counter should silence the triangle")
    }

    triangle.ReloadLinearCounter()
    triangle.LoadLengthCounter(1)
    triangle.HalfFrame()
    if !triangle.Silent() {
        test.Fatalf("an exhausted length counter should silence the triangle")
    }
}

func TestTriangleControlHaltsBothCounters(test *testing.T){
    triangle := makeTestTriangle(100)
    triangle.SetLinearControl(true)
    triangle.LoadLengthCounter(2)

    for i := 0; i < 300; i++ {
        triangle.QuarterFrame()
        triangle.HalfFrame()
    }

    if triangle.Linear.Value != 128 || triangle.Length.Value != 2 {
        test.Fatalf("control flag should halt both counters, linear %v length %v", triangle.Linear.Value, triangle.Length.Value)
    }
}

func TestTriangleManyStepsPerSample(test *testing.T){
    /* divider 2 steps the sequencer about 10 times per 44.1khz sample */
    triangle := makeTestTriangle(2)
    for i := 0; i < 44100; i++ {
        triangle.Tick(testSampleRate, CPUFrequency)
    }
    total := triangle.Time
    if total < 0.999 || total > 1.001 {
        test.Fatalf("expected one second of emulated time but was %v", total)
    }
    step := triangle.Timer.Period(CPUCyclesPerTriangleStep, CPUFrequency)
    if triangle.StepTime < 0 || triangle.StepTime > step * 1.000001 {
        test.Fatalf("leftover step time %v should be less than one step", triangle.StepTime)
    }
}

func TestTriangleResetKeepsIndex(test *testing.T){
    triangle := makeTestTriangle(100)
    rate := oneStepSampleRate(100)
    for i := 0; i < 5; i++ {
        triangle.Tick(rate, CPUFrequency)
    }
    index := triangle.SequenceIndex
    triangle.Reset()
    if triangle.SequenceIndex != index || triangle.Time != 0 || triangle.StepTime != 0 {
        test.Fatalf("reset should only clear time, got index %v time %v", triangle.SequenceIndex, triangle.Time)
    }
}
