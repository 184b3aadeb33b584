package x11

import (
	"context"
	"image"

	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"

	"github.com/quickshot/quickshot/pkg/capture"
	"github.com/quickshot/quickshot/pkg/window"
)

// CopyWindow reads the window's own pixels with GetImage on the window
// drawable, so parts hidden behind other windows are still captured when the
// compositor keeps a backing store. The result is exactly the window size.
func (l *Locator) CopyWindow(ctx context.Context, info *window.WindowInfo) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := l.conn()
	if err != nil {
		return nil, err
	}
	if info == nil || info.ID == 0 {
		return nil, errors.New("no x11 window to copy")
	}
	if info.Rect.Empty() {
		return nil, errors.Errorf("window 0x%x has empty geometry %s", info.ID, info.Rect)
	}
	if c.setup.ImageByteOrder != xproto.ImageOrderLSBFirst {
		return nil, errors.New("unsupported X server image byte order")
	}

	width := info.Rect.Width()
	height := info.Rect.Height()
	reply, err := xproto.GetImage(
		c.conn,
		xproto.ImageFormatZPixmap,
		xproto.Drawable(info.ID),
		0, 0,
		uint16(width), uint16(height),
		0xffffffff,
	).Reply()
	if err != nil {
		return nil, errors.Wrapf(err, "GetImage failed for window 0x%x", info.ID)
	}

	if bpp := c.bitsPerPixel(reply.Depth); bpp != 32 {
		return nil, errors.Errorf("unsupported pixmap format: depth %d, %d bpp", reply.Depth, bpp)
	}

	img, err := capture.FromBGRX(reply.Data, width, height, width*4)
	if err != nil {
		return nil, err
	}
	return img, nil
}
