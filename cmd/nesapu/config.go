package main

import (
    "os"
    "log"
    "fmt"
    "encoding/json"
    "path/filepath"

    apu "github.com/kazzmir/nesapu/lib"
)

const CurrentVersion = 1

type ConfigData struct {
    Version int `json:"version,omitempty"`
    SampleRate int `json:"sample-rate,omitempty"`
    Channels int `json:"channels,omitempty"`
    /* linear or nonlinear */
    Mixer string `json:"mixer,omitempty"`
    /* ebiten or oto */
    Backend string `json:"backend,omitempty"`
    BufferMilliseconds int `json:"buffer-ms,omitempty"`
    Monitor bool `json:"monitor"`
}

/* make the directory where the config file lives, which is ~/.config/nesapu on linux */
func GetOrCreateConfigDir() (string, error) {
    configDir, err := os.UserConfigDir()
    if err != nil {
        return "", err
    }
    configPath := filepath.Join(configDir, "nesapu")
    err = os.MkdirAll(configPath, 0755)
    if err != nil {
        return "", err
    }

    return configPath, nil
}

func DefaultConfigData() ConfigData {
    return ConfigData{
        Version: CurrentVersion,
        SampleRate: 44100,
        Channels: 2,
        Mixer: apu.MixerLinear.String(),
        Backend: "ebiten",
        BufferMilliseconds: 50,
        Monitor: true,
    }
}

func DefaultConfigPath() (string, error) {
    configPath, err := GetOrCreateConfigDir()
    if err != nil {
        return "", err
    }
    return filepath.Join(configPath, "config.json"), nil
}

/* missing fields keep their defaults, a file from another version is ignored */
func LoadConfigData(path string) (ConfigData, error) {
    file, err := os.Open(path)
    if err != nil {
        return DefaultConfigData(), err
    }
    defer file.Close()

    data := DefaultConfigData()
    decoder := json.NewDecoder(file)
    err = decoder.Decode(&data)
    if err != nil {
        log.Printf("Could not load config data: %v", err)
        return DefaultConfigData(), err
    }

    if data.Version != CurrentVersion {
        return DefaultConfigData(), nil
    }

    return data, nil
}

func SaveConfigData(path string, data ConfigData) error {
    file, err := os.Create(path)
    if err != nil {
        return err
    }
    defer file.Close()

    encoder := json.NewEncoder(file)
    encoder.SetIndent("", "  ")
    return encoder.Encode(data)
}

/* the apu configuration this file describes */
func (data ConfigData) APUConfig() (apu.Config, error) {
    mixer, err := apu.ParseMixerMode(data.Mixer)
    if err != nil {
        return apu.Config{}, err
    }

    config := apu.Config{
        SampleRate: float64(data.SampleRate),
        ClockRate: apu.CPUFrequency,
        Channels: data.Channels,
        Mixer: mixer,
    }

    err = config.Validate()
    if err != nil {
        return apu.Config{}, err
    }

    switch data.Backend {
        case "ebiten":
            /* ebiten's float32 player is always stereo */
            if data.Channels != 2 {
                return apu.Config{}, fmt.Errorf("%w: the ebiten backend needs 2 channels, not %v", apu.ErrInvalidConfig, data.Channels)
            }
        case "oto":
        default:
            return apu.Config{}, fmt.Errorf("%w: unknown audio backend '%v'", apu.ErrInvalidConfig, data.Backend)
    }

    return config, nil
}
