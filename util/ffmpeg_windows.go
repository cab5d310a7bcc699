package util

import (
    "errors"
    "context"
)

var UnsupportedError = errors.New("Unsupported")

func FindFfmpegBinary() (string, error) {
    return "", UnsupportedError
}

/* passing the audio pipe as an extra file descriptor does not work on windows */
func EncodeAudio(quit context.Context, output string, sampleRate int, channels int, audioIn <-chan []float32) error {
    return UnsupportedError
}
