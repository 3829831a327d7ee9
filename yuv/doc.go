// Package yuv draws solid boxes into planar YUV 4:2:0 frames.
//
// A box covers luma samples at full resolution and the chroma samples of
// every 2x2 block it touches, found by halving the luma coordinates. The
// drawing functions hold no state and do no locking: callers drawing into
// one frame from several goroutines must keep their boxes on disjoint 2x2
// blocks or serialize the calls.
package yuv
