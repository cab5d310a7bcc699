package lib

/* NTSC cpu clock, the master clock every channel divides down from */
const CPUFrequency = 1.789773e6

const CPUCyclesPerPulseCycle = 16
const CPUCyclesPerTriangleStep = 1

const PulseMinimumDivider = 8
const PulseMaximumDivider = 0x7ff
const TriangleMinimumDivider = 2

/* 11 bits */
const MaximumTimerReload = 0x7ff

type Divider struct {
    /* how many input clocks must pass before an output clock is generated */
    ClockPeriod uint16
    Count int16
}

func (divider *Divider) Reset() {
    divider.Count = int16(divider.ClockPeriod)
}

/* returns true if an output clock was generated */
func (divider *Divider) Clock() bool {
    if divider.Count > 0 {
        divider.Count -= 1
        return false
    }

    divider.Reset()
    return true
}

/* the reload-counted timer that sets a channel's pitch. For a reload value r
 * the period in seconds is (r + 2) * cyclesPerUnit / clockRate
 */
type Timer struct {
    Reload uint16
}

func (timer *Timer) SetReload(value uint16){
    if value > MaximumTimerReload {
        value = MaximumTimerReload
    }
    timer.Reload = value
}

/* replace the low 8 bits, as the timer-low register does */
func (timer *Timer) SetLow(value byte){
    timer.Reload = (timer.Reload & 0x700) | uint16(value)
}

/* replace the high 3 bits, as the timer-high register does */
func (timer *Timer) SetHigh(value byte){
    timer.Reload = (timer.Reload & 0xff) | (uint16(value & 0x7) << 8)
}

func (timer *Timer) Period(cyclesPerUnit float64, clockRate float64) float64 {
    return float64(timer.Reload + 2) * cyclesPerUnit / clockRate
}

func (timer *Timer) InRange(minimum uint16, maximum uint16) bool {
    return timer.Reload >= minimum && timer.Reload <= maximum
}
