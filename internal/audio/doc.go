// Package audio plays a chime when a toast is shown. It uses the beep
// library to decode WAV, OGG and MP3 files, with one sound per toast type
// and a shared volume.
package audio
