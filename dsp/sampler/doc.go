// Package sampler plays decoded audio clips as graph sources.
//
// Clips are loaded fully into memory and normalised to [-1, 1). PCM WAV
// and AIFF go through the go-audio decoders; MP3, FLAC and Ogg Vorbis use
// go-mp3, mewkiz/flac and oggvorbis. A Player replays a clip once
// or in a loop; a one-shot Player reports PartialOutput on the call in which
// the clip runs out.
package sampler
