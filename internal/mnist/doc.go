// Package mnist reads handwritten digit datasets in the IDX format used by
// the MNIST distribution.
//
// Image files start with the big-endian header (magic 2051, count, rows,
// cols) followed by count*rows*cols unsigned pixel bytes. Label files start
// with (magic 2049, count) followed by count label bytes. Both may be
// gzip-compressed; compression is detected from the stream header.
//
// Pixels are kept as raw bytes. NormalizePixels and OneHot convert a sample
// into the input and target vectors expected by the classifier.
package mnist
