package convert

// Package convert holds the transcoding capability used by the batch
// converter. A Transcoder turns one MP3 file into a 16-bit little-endian PCM
// WAV at 44.1 kHz and reports the outcome as an exit status plus diagnostic
// text. FFmpeg shells out to the ffmpeg binary; Native decodes and encodes in
// process. VerifyWAV and Probe are helpers for checking outputs and
// describing inputs.
