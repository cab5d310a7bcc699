package main

import (
    "io"
    "time"
    "fmt"

    audiolib "github.com/hajimehoshi/ebiten/v2/audio"
    "github.com/ebitengine/oto/v3"
)

/* an audio device that pulls little endian float32 frames from a reader */
type AudioBackend interface {
    Play(stream io.Reader) error
    Close() error
}

type EbitenBackend struct {
    context *audiolib.Context
    player *audiolib.Player
    buffer time.Duration
}

/* ebiten's float32 player always reads 2 channels */
func MakeEbitenBackend(sampleRate int, buffer time.Duration) *EbitenBackend {
    return &EbitenBackend{
        context: audiolib.NewContext(sampleRate),
        buffer: buffer,
    }
}

func (backend *EbitenBackend) Play(stream io.Reader) error {
    player, err := backend.context.NewPlayerF32(stream)
    if err != nil {
        return fmt.Errorf("Error creating audio player: %w", err)
    }
    player.SetBufferSize(backend.buffer)
    player.Play()
    backend.player = player
    return nil
}

func (backend *EbitenBackend) Close() error {
    if backend.player != nil {
        backend.player.Pause()
        return backend.player.Close()
    }
    return nil
}

type OtoBackend struct {
    context *oto.Context
    player *oto.Player
    buffer time.Duration
}

func MakeOtoBackend(sampleRate int, channels int, buffer time.Duration) (*OtoBackend, error) {
    options := &oto.NewContextOptions{
        SampleRate: sampleRate,
        ChannelCount: channels,
        Format: oto.FormatFloat32LE,
        BufferSize: buffer,
    }

    context, ready, err := oto.NewContext(options)
    if err != nil {
        return nil, err
    }
    <-ready

    return &OtoBackend{
        context: context,
        buffer: buffer,
    }, nil
}

func (backend *OtoBackend) Play(stream io.Reader) error {
    backend.player = backend.context.NewPlayer(stream)
    backend.player.Play()
    return nil
}

func (backend *OtoBackend) Close() error {
    if backend.player != nil {
        backend.player.Pause()
        backend.player.Close()
        return backend.player.Err()
    }
    return nil
}

func MakeAudioBackend(name string, sampleRate int, channels int, buffer time.Duration) (AudioBackend, error) {
    switch name {
        case "ebiten": return MakeEbitenBackend(sampleRate, buffer), nil
        case "oto": return MakeOtoBackend(sampleRate, channels, buffer)
    }

    return nil, fmt.Errorf("unknown audio backend '%v'", name)
}
