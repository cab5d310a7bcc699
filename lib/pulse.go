package lib

import (
    "math"
)

/* duty ratios selected by the top two bits of the pulse control register */
var DutyTable [4]float32 = [4]float32{0.125, 0.25, 0.5, 0.75}

type Pulse struct {
    Name string
    Timer Timer
    Duty float32
    Envelope EnvelopeGenerator
    Sweep Sweep
    Length LengthCounter
    Enabled bool
    /* seconds of emulated time since the last reset, the phase is derived from this */
    Time float64
    FrameMode bool
}

func MakePulse(name string) Pulse {
    return Pulse{
        Name: name,
        Envelope: MakeEnvelopeGenerator(),
    }
}

func (pulse *Pulse) Copy() Pulse {
    return *pulse
}

func (pulse *Pulse) SetDivider(reload uint16){
    pulse.Timer.SetReload(reload)
}

func (pulse *Pulse) SetDuty(duty float32){
    switch {
        case math.IsNaN(float64(duty)):
            duty = 0
        case duty < 0:
            duty = 0
        case duty > 1:
            duty = 1
    }
    pulse.Duty = duty
}

func (pulse *Pulse) SetEnabled(enabled bool){
    pulse.Enabled = enabled
}

func (pulse *Pulse) ConfigureSweep(enabled bool, period byte, shift byte, negate bool){
    pulse.Sweep.Configure(enabled, period, shift, negate)
}

func (pulse *Pulse) ConfigureEnvelope(loop bool, constant bool, value byte){
    pulse.Envelope.Configure(loop, constant, value)
}

func (pulse *Pulse) SetLengthCounterHalt(halt bool){
    pulse.Length.SetHalt(halt)
}

func (pulse *Pulse) LoadLengthCounter(value uint16){
    pulse.Length.Load(value)
}

/* restart phase and envelope. divider, duty, length and sweep are untouched */
func (pulse *Pulse) Reset(){
    pulse.Time = 0
    pulse.Envelope.Reset()
}

func (pulse *Pulse) UpdateFrameCounter(mode bool){
    pulse.FrameMode = mode
}

func (pulse *Pulse) QuarterFrame(){
    pulse.Sweep.ClockQuarterFrame(&pulse.Timer)
    pulse.Envelope.ClockQuarterFrame()
}

func (pulse *Pulse) HalfFrame(){
    pulse.Length.ClockHalfFrame(pulse.Enabled)
    pulse.Sweep.ClockQuarterFrame(&pulse.Timer)
}

func (pulse *Pulse) Silent() bool {
    return !pulse.Enabled ||
           pulse.Length.IsZero() ||
           !pulse.Timer.InRange(PulseMinimumDivider, PulseMaximumDivider)
}

func (pulse *Pulse) Frequency(clockRate float64) float64 {
    return 1.0 / pulse.Timer.Period(CPUCyclesPerPulseCycle, clockRate)
}

/* produce one sample in the range 0-15 and advance time by one sample */
func (pulse *Pulse) Tick(sampleRate float64, clockRate float64) float32 {
    var out float32

    if !pulse.Silent() {
        period := pulse.Timer.Period(CPUCyclesPerPulseCycle, clockRate)
        /* the eighth-period offset lines the duty cycle up with the hardware sequencer */
        phase := math.Mod((pulse.Time - 0.125 * period) / period, 1.0)
        if phase < 0 {
            phase += 1.0
        }

        if phase < float64(pulse.Duty) {
            out = float32(pulse.Envelope.Volume())
        }
    }

    pulse.Time += 1.0 / sampleRate
    return out
}
