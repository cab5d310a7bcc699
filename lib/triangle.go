package lib

import (
    "math"
)

const TriangleSequenceLength = 32
/* index 15 outputs 0, so a fresh channel does not pop when it starts */
const TriangleSequenceStart = 15

var TriangleWaveForm [TriangleSequenceLength]byte = [TriangleSequenceLength]byte{
    15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
    0,  1,  2,  3,  4,  5,  6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
}

type Triangle struct {
    Name string
    Timer Timer
    SequenceIndex int
    Linear LinearCounter
    Length LengthCounter
    Enabled bool
    Time float64
    /* emulated time not yet consumed by a sequencer step */
    StepTime float64
    FrameMode bool
}

func MakeTriangle(name string) Triangle {
    return Triangle{
        Name: name,
        SequenceIndex: TriangleSequenceStart,
    }
}

func (triangle *Triangle) Copy() Triangle {
    return *triangle
}

func (triangle *Triangle) SetDivider(reload uint16){
    triangle.Timer.SetReload(reload)
}

func (triangle *Triangle) SetEnabled(enabled bool){
    triangle.Enabled = enabled
}

/* the linear counter control bit and the length counter halt are the same bit */
func (triangle *Triangle) SetLinearControl(halt bool){
    triangle.Linear.SetHaltControl(halt)
    triangle.Length.SetHalt(halt)
}

func (triangle *Triangle) SetLinearReloadValue(value uint16){
    triangle.Linear.SetReloadValue(value)
}

func (triangle *Triangle) ReloadLinearCounter(){
    triangle.Linear.RequestReload()
}

func (triangle *Triangle) LoadLengthCounter(value uint16){
    triangle.Length.Load(value)
}

/* the sequencer position is kept so the output level does not jump */
func (triangle *Triangle) Reset(){
    triangle.Time = 0
    triangle.StepTime = 0
}

func (triangle *Triangle) UpdateFrameCounter(mode bool){
    triangle.FrameMode = mode
}

func (triangle *Triangle) QuarterFrame(){
    triangle.Linear.ClockQuarterFrame()
}

func (triangle *Triangle) HalfFrame(){
    triangle.Length.ClockHalfFrame(triangle.Enabled)
}

/* gated: the sequencer stops stepping and Output keeps the last level.
 * Dividers below 2 are gated as well
 */
func (triangle *Triangle) Silent() bool {
    return !triangle.Enabled ||
           triangle.Linear.IsZero() ||
           triangle.Length.IsZero() ||
           triangle.Timer.Reload < TriangleMinimumDivider
}

func (triangle *Triangle) Output() byte {
    return TriangleWaveForm[triangle.SequenceIndex]
}

func (triangle *Triangle) Frequency(clockRate float64) float64 {
    return 1.0 / (triangle.Timer.Period(CPUCyclesPerTriangleStep, clockRate) * TriangleSequenceLength)
}

/* Advances the 32-step sequencer by however many steps fit in one sample.
 * A silent channel keeps its cadence but holds its position, so the output
 * stays at the last level instead of dropping to 0.
 */
func (triangle *Triangle) Tick(sampleRate float64, clockRate float64) float32 {
    stepPeriod := triangle.Timer.Period(CPUCyclesPerTriangleStep, clockRate)

    triangle.StepTime += 1.0 / sampleRate
    steps := math.Floor(triangle.StepTime / stepPeriod)
    if steps > 0 {
        triangle.StepTime -= steps * stepPeriod
        if triangle.StepTime < 0 {
            triangle.StepTime = 0
        }
        if !triangle.Silent() {
            advance := int(math.Mod(steps, TriangleSequenceLength))
            triangle.SequenceIndex = (triangle.SequenceIndex + advance) % TriangleSequenceLength
        }
    }

    triangle.Time += 1.0 / sampleRate
    return float32(triangle.Output())
}
