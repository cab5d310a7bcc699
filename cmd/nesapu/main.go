package main

import (
    "os"
    "log"
    "fmt"
    "flag"
    "time"
    "context"
    "errors"
    "os/signal"

    apu "github.com/kazzmir/nesapu/lib"
    "github.com/kazzmir/nesapu/data"
    "github.com/kazzmir/nesapu/driver"
    "github.com/kazzmir/nesapu/script"
    "github.com/kazzmir/nesapu/sequencer"
    "github.com/kazzmir/nesapu/util"
    "github.com/kazzmir/nesapu/util/thread"
)

type Options struct {
    ConfigPath string
    Script string
    WavPath string
    RecordPath string
    Seconds float64
    Monitor bool
    SaveConfig bool
    Debug int
}

/* the lua source to run: a file on disk or one of the bundled scripts */
func loadScript(machine *script.Machine, name string) error {
    if name == "" {
        name = "demo"
    }

    _, err := os.Stat(name)
    if err == nil {
        return machine.LoadFile(name)
    }

    source, err := data.ReadScript(name + ".lua")
    if err != nil {
        return fmt.Errorf("no script file '%v' and no bundled script by that name, bundled scripts are %v", name, data.ScriptNames())
    }
    return machine.LoadString(source)
}

type Player struct {
    APU *apu.APU
    Sequencer *sequencer.FrameSequencer
    Machine *script.Machine
    Driver *driver.Driver
}

func MakePlayer(config apu.Config, scriptName string, debug int) (*Player, error) {
    config.Debug = debug
    chip, err := apu.MakeAPU(config)
    if err != nil {
        return nil, err
    }

    frameSequencer := sequencer.MakeFrameSequencer(chip)
    frameSequencer.Debug = debug

    machine := script.MakeMachine(chip, frameSequencer)
    machine.Debug = debug

    err = loadScript(machine, scriptName)
    if err != nil {
        machine.Close()
        return nil, err
    }

    chipDriver := driver.MakeDriver(chip, frameSequencer, machine)
    chipDriver.Debug = debug

    return &Player{
        APU: chip,
        Sequencer: frameSequencer,
        Machine: machine,
        Driver: chipDriver,
    }, nil
}

func (player *Player) Close(){
    player.Machine.Close()
}

/* render mono samples and duplicate them into each output channel */
func (player *Player) renderInterleaved(frames int) ([]float32, error) {
    channels := player.APU.Config().Channels
    mono := make([]float32, frames)
    err := player.Driver.Render(mono)
    if err != nil {
        return nil, err
    }

    out := make([]float32, frames * channels)
    for i, sample := range mono {
        for channel := 0; channel < channels; channel++ {
            out[i * channels + channel] = sample
        }
    }
    return out, nil
}

func (player *Player) RenderWav(path string, seconds float64) error {
    file, err := os.Create(path)
    if err != nil {
        return err
    }
    defer file.Close()

    config := player.APU.Config()
    writer, err := util.MakeWavWriter(file, int(config.SampleRate), config.Channels)
    if err != nil {
        return err
    }

    total := int(seconds * config.SampleRate)
    chunk := int(config.SampleRate) / 10
    for total > 0 {
        frames := min(chunk, total)
        samples, err := player.renderInterleaved(frames)
        if err != nil {
            return err
        }
        err = writer.Write(samples)
        if err != nil {
            return err
        }
        total -= frames
    }

    log.Printf("Wrote %.2f seconds to %v", seconds, path)
    return writer.Close()
}

func (player *Player) Record(quit context.Context, path string, seconds float64) error {
    config := player.APU.Config()
    audio := make(chan []float32, 4)

    group := thread.NewThreadGroup(quit)
    group.Spawn(func(quit context.Context) error {
        defer close(audio)
        total := int(seconds * config.SampleRate)
        chunk := int(config.SampleRate) / 10
        for total > 0 {
            frames := min(chunk, total)
            samples, err := player.renderInterleaved(frames)
            if err != nil {
                return err
            }
            select {
                case audio <- samples:
                case <-quit.Done():
                    return nil
            }
            total -= frames
        }
        return nil
    })

    group.Spawn(func(quit context.Context) error {
        return util.EncodeAudio(quit, path, int(config.SampleRate), config.Channels, audio)
    })

    return group.Wait()
}

func (player *Player) PlayRealtime(quit context.Context, backendName string, buffer time.Duration, seconds float64, monitor bool) error {
    config := player.APU.Config()

    backend, err := MakeAudioBackend(backendName, int(config.SampleRate), config.Channels, buffer)
    if err != nil {
        return err
    }
    defer backend.Close()

    group := thread.NewThreadGroup(quit)

    if seconds > 0 {
        group.Spawn(func(quit context.Context) error {
            select {
                case <-quit.Done():
                case <-time.After(time.Duration(seconds * float64(time.Second))):
                    group.Cancel()
            }
            return nil
        })
    }

    actions := make(chan driver.Action, 2)

    group.Spawn(func(quit context.Context) error {
        return player.Driver.RunRealtime(quit, actions)
    })

    err = backend.Play(apu.MakeAudioStream(player.APU))
    if err != nil {
        group.Cancel()
        group.Wait()
        return err
    }

    if monitor {
        group.Spawn(func(quit context.Context) error {
            return RunMonitor(quit, group.Cancel, player.Driver, actions)
        })
    } else {
        log.Printf("Playing with the %v backend at %vhz, %v channels", backendName, config.SampleRate, config.Channels)
    }

    return group.Wait()
}

func run(options Options, settings ConfigData) error {
    config, err := settings.APUConfig()
    if err != nil {
        return err
    }

    if options.SaveConfig {
        err := SaveConfigData(options.ConfigPath, settings)
        if err != nil {
            return err
        }
        log.Printf("Saved config to %v", options.ConfigPath)
    }

    player, err := MakePlayer(config, options.Script, options.Debug)
    if err != nil {
        return err
    }
    defer player.Close()

    quit, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
    defer cancel()

    if options.WavPath != "" {
        return player.RenderWav(options.WavPath, options.Seconds)
    }

    if options.RecordPath != "" {
        return player.Record(quit, options.RecordPath, options.Seconds)
    }

    monitor := options.Monitor && settings.Monitor && CanMonitor()
    buffer := time.Duration(settings.BufferMilliseconds) * time.Millisecond
    return player.PlayRealtime(quit, settings.Backend, buffer, options.Seconds, monitor)
}

func main(){
    log.SetFlags(log.Lshortfile | log.Lmicroseconds | log.Ldate)

    var options Options
    var settings ConfigData

    defaultPath, err := DefaultConfigPath()
    if err != nil {
        log.Printf("Could not find the config directory: %v", err)
    }

    flag.StringVar(&options.ConfigPath, "config", defaultPath, "json config file")
    flag.StringVar(&options.Script, "script", "", fmt.Sprintf("lua file that drives the apu, or a bundled script %v", data.ScriptNames()))
    flag.StringVar(&options.WavPath, "wav", "", "render to a wav file instead of playing")
    flag.StringVar(&options.RecordPath, "record", "", "render and encode with ffmpeg, the format comes from the file extension")
    flag.Float64Var(&options.Seconds, "seconds", 0, "how long to play or render, 0 plays until quit and renders 10 seconds")
    noMonitor := flag.Bool("no-monitor", false, "do not show the terminal monitor")
    flag.BoolVar(&options.SaveConfig, "save-config", false, "save the settings given on the command line to the config file")
    flag.IntVar(&options.Debug, "debug", 0, "log apu activity, 2 for more")

    sampleRate := flag.Int("rate", 0, "output sample rate")
    channels := flag.Int("channels", 0, "output channels")
    mixer := flag.String("mixer", "", "linear or nonlinear")
    backend := flag.String("backend", "", "ebiten or oto")

    flag.Parse()

    settings, err = LoadConfigData(options.ConfigPath)
    if err != nil && !errors.Is(err, os.ErrNotExist) {
        log.Printf("Using the default config: %v", err)
    }

    if *sampleRate != 0 {
        settings.SampleRate = *sampleRate
    }
    if *channels != 0 {
        settings.Channels = *channels
    }
    if *mixer != "" {
        settings.Mixer = *mixer
    }
    if *backend != "" {
        settings.Backend = *backend
    }
    options.Monitor = !*noMonitor

    if (options.WavPath != "" || options.RecordPath != "") && options.Seconds <= 0 {
        options.Seconds = 10
    }

    err = run(options, settings)
    if err != nil {
        log.Printf("Error: %v", err)
        os.Exit(1)
    }
}
