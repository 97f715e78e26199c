package wav

import "errors"

var (
	// ErrNotWavFile indicates the input is not a valid WAV file
	ErrNotWavFile = errors.New("not a WAV file")

	// ErrOnlyPCM16bitSupported indicates only 16-bit PCM is supported
	ErrOnlyPCM16bitSupported = errors.New("only PCM 16-bit supported")

	// ErrUnsupportedWavLayout indicates an unsupported WAV layout
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
)
