//go:build windows

package win32

import (
	"context"
	"image"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/quickshot/quickshot/pkg/capture"
	"github.com/quickshot/quickshot/pkg/window"
)

// CopyWindow blits the window's device context into a memory bitmap and
// converts it to RGBA. Every GDI handle is released on every return path;
// they are a finite per-process resource.
func (l *Locator) CopyWindow(ctx context.Context, info *window.WindowInfo) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if info == nil || info.ID == 0 {
		return nil, errors.New("no window handle to copy")
	}
	width, height := info.Rect.Width(), info.Rect.Height()
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("window 0x%x has empty geometry %s", info.ID, info.Rect)
	}

	hwnd := uintptr(info.ID)
	windowDC, _, err := procGetWindowDC.Call(hwnd)
	if windowDC == 0 {
		return nil, errors.Wrap(err, "GetWindowDC failed")
	}
	defer procReleaseDC.Call(hwnd, windowDC)

	memDC, _, err := procCreateCompatibleDC.Call(windowDC)
	if memDC == 0 {
		return nil, errors.Wrap(err, "CreateCompatibleDC failed")
	}
	defer procDeleteDC.Call(memDC)

	bitmap, _, err := procCreateCompatibleBitmap.Call(windowDC, uintptr(width), uintptr(height))
	if bitmap == 0 {
		return nil, errors.Wrap(err, "CreateCompatibleBitmap failed")
	}
	defer procDeleteObject.Call(bitmap)

	previous, _, err := procSelectObject.Call(memDC, bitmap)
	if previous == 0 {
		return nil, errors.Wrap(err, "SelectObject failed")
	}
	selected := true
	deselect := func() {
		if selected {
			procSelectObject.Call(memDC, previous)
			selected = false
		}
	}
	defer deselect()

	ok, _, err := procBitBlt.Call(memDC, 0, 0, uintptr(width), uintptr(height), windowDC, 0, 0, srcCopy|captureBlt)
	if ok == 0 {
		return nil, errors.Wrap(err, "BitBlt failed")
	}

	// GetDIBits requires the bitmap not to be selected into a DC
	deselect()

	header := bitmapInfo{
		Header: bitmapInfoHeader{
			Width:       int32(width),
			Height:      -int32(height), // top-down rows
			Planes:      1,
			BitCount:    32,
			Compression: biRGB,
		},
	}
	header.Header.Size = uint32(unsafe.Sizeof(header.Header))

	stride := width * 4
	buf := make([]byte, stride*height)
	lines, _, err := procGetDIBits.Call(
		memDC,
		bitmap,
		0,
		uintptr(height),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&header)),
		dibRGBColors,
	)
	if lines == 0 {
		return nil, errors.Wrap(err, "GetDIBits failed")
	}

	img, convErr := capture.FromBGRX(buf, width, height, stride)
	if convErr != nil {
		return nil, convErr
	}
	return img, nil
}
