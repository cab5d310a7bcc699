package main

import (
    "os"
    "fmt"
    "time"
    "context"
    "strings"

    apu "github.com/kazzmir/nesapu/lib"
    "github.com/kazzmir/nesapu/driver"

    "github.com/jroimartin/gocui"
    "golang.org/x/term"
)

/* the monitor takes over the terminal, so only run it on a real one */
func CanMonitor() bool {
    return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

func onOff(value bool) string {
    if value {
        return "on"
    }
    return "off"
}

func formatPulse(pulse apu.Pulse, clockRate float64) string {
    var out strings.Builder
    fmt.Fprintf(&out, "enabled  %v\n", onOff(pulse.Enabled))
    fmt.Fprintf(&out, "silent   %v\n", onOff(pulse.Silent()))
    fmt.Fprintf(&out, "divider  %v (%.2fhz)\n", pulse.Timer.Reload, pulse.Frequency(clockRate))
    fmt.Fprintf(&out, "duty     %v\n", pulse.Duty)
    fmt.Fprintf(&out, "volume   %v constant=%v loop=%v\n", pulse.Envelope.Volume(), onOff(pulse.Envelope.ConstantVolume), onOff(pulse.Envelope.Loop))
    fmt.Fprintf(&out, "sweep    %v period=%v shift=%v negate=%v\n", onOff(pulse.Sweep.Enabled), pulse.Sweep.DividerReload, pulse.Sweep.ShiftCount, onOff(pulse.Sweep.Negate))
    fmt.Fprintf(&out, "length   %v halt=%v\n", pulse.Length.Value, onOff(pulse.Length.Halt))
    return out.String()
}

func formatTriangle(triangle apu.Triangle, clockRate float64) string {
    var out strings.Builder
    fmt.Fprintf(&out, "enabled  %v\n", onOff(triangle.Enabled))
    fmt.Fprintf(&out, "silent   %v\n", onOff(triangle.Silent()))
    fmt.Fprintf(&out, "divider  %v (%.2fhz)\n", triangle.Timer.Reload, triangle.Frequency(clockRate))
    fmt.Fprintf(&out, "step     %v output=%v\n", triangle.SequenceIndex, triangle.Output())
    fmt.Fprintf(&out, "linear   %v reload=%v halt=%v\n", triangle.Linear.Value, triangle.Linear.ReloadValue, onOff(triangle.Linear.Halt))
    fmt.Fprintf(&out, "length   %v halt=%v\n", triangle.Length.Value, onOff(triangle.Length.Halt))
    return out.String()
}

func formatStatus(state apu.State, cycles float64, frame uint64, paused bool) string {
    mode := "4-step"
    if state.FrameMode {
        mode = "5-step"
    }
    pausedText := ""
    if paused {
        pausedText = " PAUSED"
    }
    return fmt.Sprintf("frame %v cycles %.0f sequencer %v%v   [p] pause [q] quit", frame, cycles, mode, pausedText)
}

type Monitor struct {
    driver *driver.Driver
    actions chan<- driver.Action
    paused bool
}

func (monitor *Monitor) layout(gui *gocui.Gui) error {
    width, height := gui.Size()
    clockRate := monitor.driver.APU.Config().ClockRate
    state := monitor.driver.APU.Snapshot()

    status, err := gui.SetView("status", 0, 0, width - 1, 2)
    if err != nil && err != gocui.ErrUnknownView {
        return err
    }
    status.Title = "nesapu"
    status.Clear()
    cycles, frame := monitor.driver.Position()
    fmt.Fprint(status, formatStatus(state, cycles, frame, monitor.paused))

    third := width / 3
    views := []struct{
        Name string
        Text string
    }{
        {apu.ChannelPulse1.String(), formatPulse(state.Pulses[0], clockRate)},
        {apu.ChannelPulse2.String(), formatPulse(state.Pulses[1], clockRate)},
        {apu.ChannelTriangle.String(), formatTriangle(state.Triangle, clockRate)},
    }

    for i, info := range views {
        view, err := gui.SetView(info.Name, i * third, 3, (i + 1) * third - 1, height - 1)
        if err != nil && err != gocui.ErrUnknownView {
            return err
        }
        view.Title = info.Name
        view.Clear()
        fmt.Fprint(view, info.Text)
    }

    return nil
}

/* Show the channel state until the user quits or the context is done. Quitting
 * the monitor cancels the rest of the program.
 */
func RunMonitor(quit context.Context, cancel context.CancelFunc, chipDriver *driver.Driver, actions chan<- driver.Action) error {
    gui, err := gocui.NewGui(gocui.OutputNormal)
    if err != nil {
        return err
    }
    defer gui.Close()

    monitor := &Monitor{
        driver: chipDriver,
        actions: actions,
    }

    gui.SetManagerFunc(monitor.layout)

    doQuit := func(gui *gocui.Gui, view *gocui.View) error {
        cancel()
        return gocui.ErrQuit
    }

    doPause := func(gui *gocui.Gui, view *gocui.View) error {
        monitor.paused = !monitor.paused
        select {
            case actions <- driver.ActionTogglePause:
            default:
        }
        return nil
    }

    bindings := []struct{
        Key interface{}
        Handler func(*gocui.Gui, *gocui.View) error
    }{
        {gocui.KeyCtrlC, doQuit},
        {'q', doQuit},
        {'p', doPause},
    }

    for _, binding := range bindings {
        err := gui.SetKeybinding("", binding.Key, gocui.ModNone, binding.Handler)
        if err != nil {
            return err
        }
    }

    go func(){
        refresh := time.NewTicker(time.Second / 20)
        defer refresh.Stop()
        for {
            select {
                case <-quit.Done():
                    gui.Update(func(gui *gocui.Gui) error {
                        return gocui.ErrQuit
                    })
                    return
                case <-refresh.C:
                    /* the layout function redraws everything */
                    gui.Update(func(gui *gocui.Gui) error {
                        return nil
                    })
            }
        }
    }()

    err = gui.MainLoop()
    if err != nil && err != gocui.ErrQuit {
        return err
    }
    return nil
}
