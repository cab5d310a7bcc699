package lib

type Sweep struct {
    Divider Divider
    Enabled bool
    /* false is add to period, true is subtract from period */
    Negate bool
    DividerReload byte
    ShiftCount byte
}

/* writing the sweep register re-arms the countdown but leaves the
 * channel's timer alone
 */
func (sweep *Sweep) Configure(enabled bool, period byte, shift byte, negate bool){
    if period > 7 {
        period = 7
    }
    if shift > 7 {
        shift = 7
    }

    sweep.Enabled = enabled
    sweep.DividerReload = period
    sweep.ShiftCount = shift
    sweep.Negate = negate
    sweep.Reset()
}

func (sweep *Sweep) Reset() {
    sweep.Divider.ClockPeriod = uint16(sweep.DividerReload)
    sweep.Divider.Reset()
}

/* the reload value the sweep would write the next time it fires, and
 * whether that write would actually happen
 */
func (sweep *Sweep) Target(timer *Timer) (uint16, bool) {
    delta := timer.Reload >> sweep.ShiftCount
    if sweep.Negate {
        /* delta <= reload so this never underflows */
        return timer.Reload - delta, true
    }

    value := timer.Reload + delta
    return value, value <= MaximumTimerReload
}

func (sweep *Sweep) ClockQuarterFrame(timer *Timer){
    if !sweep.Divider.Clock() {
        return
    }

    if !sweep.Enabled {
        return
    }

    value, ok := sweep.Target(timer)
    if ok {
        timer.Reload = value
    }
}
