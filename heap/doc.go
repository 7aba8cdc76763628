// Package heap provides the heap sources that feed attribute sections.
//
// An HPKG package stores its attribute sections in a heap: one region of the
// file, split into chunks of DefaultChunkSize uncompressed bytes that are
// compressed independently. Readers in this package expose the heap through a
// single primitive, ReadData(offset, buf), over uncompressed offsets, so the
// section and walker never see compression:
//
//	reader, err := heap.Open(file, "demo.hpkg", heap.Layout{
//	    Offset:           headerSize,
//	    CompressedSize:   compressedHeapSize,
//	    UncompressedSize: heapSize,
//	    Compression:      format.CompressionZstd,
//	}, heap.WithCache(cache))
//
// BytesReader serves a heap that is already in memory.
package heap
