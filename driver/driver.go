package driver

import (
    "context"
    "log"
    "sync"
    "time"

    apu "github.com/kazzmir/nesapu/lib"
    "github.com/kazzmir/nesapu/sequencer"
)

/* ntsc video frames per second, the rate a music routine is called at */
const FrameRate = 60.0988

/* something that is run once per video frame, like a script's frame() function */
type FrameSource interface {
    Frame(frame uint64) error
}

type Action int
const (
    ActionTogglePause Action = iota
)

/* Keeps emulated cpu time for an apu: the frame sequencer is clocked from
 * it and the frame source is called at FrameRate. Audio is pulled either
 * offline with Render or by an audio device through lib.AudioStream while
 * RunRealtime advances time from the wall clock.
 */
type Driver struct {
    lock sync.Mutex
    APU *apu.APU
    Sequencer *sequencer.FrameSequencer
    source FrameSource

    /* total emulated cpu cycles */
    Cycles float64
    /* cpu cycles left until the next frame source call */
    frameCycles float64
    Frame uint64

    Debug int
}

/* source may be nil */
func MakeDriver(chip *apu.APU, frameSequencer *sequencer.FrameSequencer, source FrameSource) *Driver {
    return &Driver{
        APU: chip,
        Sequencer: frameSequencer,
        source: source,
    }
}

func (driver *Driver) CyclesPerFrame() float64 {
    return driver.APU.Config().ClockRate / FrameRate
}

func (driver *Driver) runFrame() error {
    if driver.source != nil {
        err := driver.source.Frame(driver.Frame)
        if err != nil {
            return err
        }
    }

    driver.Frame += 1
    driver.frameCycles += driver.CyclesPerFrame()
    return nil
}

/* move emulated time forward by some cpu cycles. the frame source runs on
 * the first call and then every CyclesPerFrame cycles
 */
func (driver *Driver) Advance(cpuCycles float64) error {
    driver.lock.Lock()
    defer driver.lock.Unlock()

    for cpuCycles > 0 {
        if driver.frameCycles <= 0 {
            err := driver.runFrame()
            if err != nil {
                return err
            }
        }

        chunk := cpuCycles
        if chunk > driver.frameCycles {
            chunk = driver.frameCycles
        }

        /* 1 apu cycle for every 2 cpu cycles */
        driver.Sequencer.Run(chunk / 2)
        driver.Cycles += chunk
        driver.frameCycles -= chunk
        cpuCycles -= chunk
    }

    return nil
}

/* emulated cpu cycles and frames so far, safe to call while another goroutine advances */
func (driver *Driver) Position() (float64, uint64) {
    driver.lock.Lock()
    defer driver.lock.Unlock()
    return driver.Cycles, driver.Frame
}

/* fill out with samples, advancing emulated time by one sample period before each */
func (driver *Driver) Render(out []float32) error {
    config := driver.APU.Config()
    cyclesPerSample := config.ClockRate / config.SampleRate

    for i := range out {
        err := driver.Advance(cyclesPerSample)
        if err != nil {
            return err
        }
        out[i] = driver.APU.Tick()
    }

    return nil
}

/* Advance emulated time in step with the wall clock until the context is
 * done. The audio device is expected to be pulling samples from the apu on
 * its own goroutine.
 */
func (driver *Driver) RunRealtime(quit context.Context, actions <-chan Action) error {
    /* run the host timer at this frequency (in ms) so that the counter
     * doesn't tick too fast
     */
    hostTickSpeed := 5
    cycleDiff := driver.APU.Config().ClockRate / (1000.0 / float64(hostTickSpeed))

    cycleTimer := time.NewTicker(time.Duration(hostTickSpeed) * time.Millisecond)
    defer cycleTimer.Stop()

    paused := false

    for {
        select {
            case <-quit.Done():
                return nil
            case action := <-actions:
                switch action {
                    case ActionTogglePause:
                        paused = !paused
                        if driver.Debug > 0 {
                            log.Printf("Driver: paused %v", paused)
                        }
                }
            case <-cycleTimer.C:
                if paused {
                    continue
                }
                err := driver.Advance(cycleDiff)
                if err != nil {
                    return err
                }
        }
    }
}
