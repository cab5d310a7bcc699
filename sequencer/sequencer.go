package sequencer

import (
    "log"
)

/* apu cycles between frame sequencer steps. about 240hz on ntsc
 *   cpu hz = 1.789773e6
 *   apu hz = cpu hz / 2
 *   1.789773e6 / 2 / 3728.5 = 240.01247
 */
const StepCycles = 3728.5

/* the quarter/half frame hooks the sequencer drives, *lib.APU implements this */
type FrameTarget interface {
    QuarterFrame()
    HalfFrame()
    UpdateFrameCounterMode(fiveStep bool)
}

type stepAction struct {
    Quarter bool
    Half bool
    /* only raised in 4-step mode when interrupts are not inhibited */
    Interrupt bool
}

var fourStepTable []stepAction = []stepAction{
    stepAction{Quarter: true},
    stepAction{Quarter: true, Half: true},
    stepAction{Quarter: true},
    stepAction{Quarter: true, Half: true, Interrupt: true},
}

var fiveStepTable []stepAction = []stepAction{
    stepAction{Quarter: true},
    stepAction{Quarter: true, Half: true},
    stepAction{Quarter: true},
    stepAction{},
    stepAction{Quarter: true, Half: true},
}

type FrameSequencer struct {
    target FrameTarget

    /* apu cycles since the last step */
    Cycles float64
    /* total number of steps taken since the last mode write */
    Clock uint64
    FiveStep bool
    InterruptInhibit bool
    IRQAsserted bool

    Debug int
}

func MakeFrameSequencer(target FrameTarget) *FrameSequencer {
    return &FrameSequencer{
        target: target,
    }
}

/* a write to $4017. restarts the sequence, and in 5-step mode clocks the
 * quarter and half frame units right away
 */
func (sequencer *FrameSequencer) SetMode(fiveStep bool, inhibitInterrupt bool){
    sequencer.FiveStep = fiveStep
    sequencer.InterruptInhibit = inhibitInterrupt
    if inhibitInterrupt {
        sequencer.IRQAsserted = false
    }

    sequencer.Cycles = 0
    sequencer.Clock = 0

    sequencer.target.UpdateFrameCounterMode(fiveStep)

    if sequencer.Debug > 0 {
        log.Printf("Sequencer: mode 5-step=%v inhibit=%v", fiveStep, inhibitInterrupt)
    }

    if fiveStep {
        sequencer.target.QuarterFrame()
        sequencer.target.HalfFrame()
    }
}

/* the value of a $4017 write */
func (sequencer *FrameSequencer) WriteFrameCounter(value byte){
    mode := value >> 7
    interrupt := (value >> 6) & 0x1
    sequencer.SetMode(mode == 1, interrupt == 1)
}

func (sequencer *FrameSequencer) table() []stepAction {
    if sequencer.FiveStep {
        return fiveStepTable
    }
    return fourStepTable
}

func (sequencer *FrameSequencer) step(){
    table := sequencer.table()
    action := table[sequencer.Clock % uint64(len(table))]
    sequencer.Clock += 1

    if sequencer.Debug > 1 {
        log.Printf("Sequencer: step %v", sequencer.Clock)
    }

    if action.Quarter {
        sequencer.target.QuarterFrame()
    }
    if action.Half {
        sequencer.target.HalfFrame()
    }
    if action.Interrupt && !sequencer.InterruptInhibit {
        sequencer.IRQAsserted = true
    }
}

/* advance by some number of apu cycles (half the cpu cycles), returning
 * how many sequencer steps were taken
 */
func (sequencer *FrameSequencer) Run(apuCycles float64) int {
    sequencer.Cycles += apuCycles

    steps := 0
    for sequencer.Cycles >= StepCycles {
        sequencer.Cycles -= StepCycles
        sequencer.step()
        steps += 1
    }

    return steps
}

/* reading $4015 clears the frame interrupt */
func (sequencer *FrameSequencer) AcknowledgeInterrupt() bool {
    asserted := sequencer.IRQAsserted
    sequencer.IRQAsserted = false
    return asserted
}
