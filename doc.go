// Package rawwave reads and writes uncompressed WAVE files as normalized
// float32 signals.
//
// Loading accepts PCM integer (8/16/24/32-bit) and IEEE float (32-bit) data,
// plain or WAVE_FORMAT_EXTENSIBLE fmt chunks, and any speaker layout. The
// source channels are mixed into one or two output channels:
//
//   - mono output is the plain sum of all source channels,
//   - stereo output pans every source speaker with a fixed weight table.
//
// Loaded signals are peak normalized. Storing always writes a canonical
// 44-byte-header 32-bit float file, peak normalized as well.
//
// The building blocks are exported for callers that need more control:
//
//   - ParseChunks builds a RIFF chunk tree, ChunkTree.Find resolves paths
//     such as "RIFFfmt ",
//   - ReadFormat and Inspect resolve the audio format,
//   - ReadMetadata returns LIST/INFO tags and the bext and smpl chunks,
//   - Decode and Encode work on in-memory buffers, DecodeBuffer and
//     EncodeBuffer on go-audio buffers.
//
// File access goes through the Storage interface; FileStore replaces files
// atomically through a temporary file.
package rawwave
