package screens

import (
	"context"
	"image"

	"github.com/rook-computer/tftgfx/internal/gfx"
	"github.com/rook-computer/tftgfx/internal/render"
	"github.com/rook-computer/tftgfx/internal/render/layout"
	"github.com/rook-computer/tftgfx/internal/state"
)

// SplashScreen shows the title and, when the preview server runs, a QR code
// of its URL.
type SplashScreen struct{}

func (SplashScreen) Start(ctx context.Context) error { return nil }
func (SplashScreen) Stop() error                     { return nil }

func (SplashScreen) Draw(gc *gfx.Context, st state.State) {
	bounds := layout.Inset(image.Rect(0, 0, gc.Width(), gc.Height()), 8)
	header, body := layout.SplitRows(bounds, 64)

	render.DrawText(gc, "tftgfx", header, header.Min.Y+8, render.TextStyle{
		Color: render.Foreground, Size: 4, Align: render.TextAlignCenter, Shadow: true,
	})
	sub := render.TextStyle{Color: gfx.Black, Align: render.TextAlignCenter}
	render.DrawText(gc, st.Phase.String()+" "+sizeLabel(gc), header, header.Min.Y+48, sub)

	qrArea, footer := layout.SplitRows(body, body.Dy()-40)
	payload := st.Network.URLQR
	if payload == "" {
		payload = st.Network.URL
	}
	if payload != "" {
		if _, err := render.DrawQRCodeInRect(gc, layout.Inset(qrArea, 8), payload, gfx.Black, gfx.White); err != nil {
			render.DrawText(gc, "qr: "+err.Error(), qrArea, qrArea.Min.Y+qrArea.Dy()/2, sub)
		}
		render.DrawText(gc, st.Network.URL, footer, footer.Min.Y+4, sub)
	} else {
		gc.FillRoundedRect(qrArea.Min.X+20, qrArea.Min.Y+20, qrArea.Dx()-40, qrArea.Dy()-40, 16, render.Foreground)
		render.DrawText(gc, "preview server off", qrArea, qrArea.Min.Y+qrArea.Dy()/2-4, render.TextStyle{
			Color: gfx.White, Align: render.TextAlignCenter,
		})
	}
	if st.Message != "" {
		render.DrawText(gc, st.Message, footer, footer.Min.Y+20, sub)
	}
	drawStatus(gc, st)
}
