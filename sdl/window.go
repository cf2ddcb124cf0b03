package sdl

import (
	"math/rand"

	"github.com/veandco/go-sdl2/sdl"
	"uk.ac.bris.cs/fastlife/util"
)

// Window draws one texture pixel per cell, scaled up by the tile size.
type Window struct {
	Width, Height int32
	Scale         int32

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	pixels   []byte
	alive    [4]byte
	dead     [4]byte
}

var (
	white = [4]byte{0xff, 0xff, 0xff, 0xff}
	black = [4]byte{0x00, 0x00, 0x00, 0xff}
)

// NewWindow opens a window for a width x height board
func NewWindow(width, height, scale int32) *Window {
	err := sdl.Init(sdl.INIT_EVERYTHING)
	util.Check(err)

	window, err := sdl.CreateWindow("Fast Life", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		width*scale, height*scale, sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	util.Check(err)

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	util.Check(err)

	w := &Window{
		Scale:    scale,
		window:   window,
		renderer: renderer,
		alive:    white,
		dead:     black,
	}
	w.Resize(width, height)
	return w
}

// Resize replaces the texture with an all-dead one of the new board size
func (w *Window) Resize(width, height int32) {
	if w.texture != nil {
		util.Check(w.texture.Destroy())
	}
	texture, err := w.renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STATIC, width, height)
	util.Check(err)
	util.Check(w.renderer.SetLogicalSize(width, height))

	w.Width, w.Height = width, height
	w.texture = texture
	w.pixels = make([]byte, width*height*4)
	for i := 0; i < len(w.pixels); i += 4 {
		copy(w.pixels[i:i+4], w.dead[:])
	}
	w.window.SetSize(width*w.Scale, height*w.Scale)
}

// SetScale changes the tile size, keeping it at least 1
func (w *Window) SetScale(scale int32) {
	if scale < 1 {
		scale = 1
	}
	w.Scale = scale
	w.window.SetSize(w.Width*w.Scale, w.Height*w.Scale)
}

// RandomiseColours picks new alive and dead colours and repaints every cell
func (w *Window) RandomiseColours() {
	oldAlive := w.alive
	w.alive = [4]byte{byte(rand.Intn(256)), byte(rand.Intn(256)), byte(rand.Intn(256)), 0xff}
	w.dead = [4]byte{byte(rand.Intn(256)), byte(rand.Intn(256)), byte(rand.Intn(256)), 0xff}
	for i := 0; i < len(w.pixels); i += 4 {
		if [4]byte{w.pixels[i], w.pixels[i+1], w.pixels[i+2], w.pixels[i+3]} == oldAlive {
			copy(w.pixels[i:i+4], w.alive[:])
		} else {
			copy(w.pixels[i:i+4], w.dead[:])
		}
	}
}

// FlipPixel toggles a cell between the alive and dead colours
func (w *Window) FlipPixel(x, y int) {
	i := (int32(y)*w.Width + int32(x)) * 4
	px := w.pixels[i : i+4]
	if [4]byte{px[0], px[1], px[2], px[3]} == w.alive {
		copy(px, w.dead[:])
	} else {
		copy(px, w.alive[:])
	}
}

func (w *Window) SetTitle(title string) {
	w.window.SetTitle(title)
}

func (w *Window) RenderFrame() {
	util.Check(w.texture.Update(nil, w.pixels, int(w.Width*4)))
	util.Check(w.renderer.Clear())
	util.Check(w.renderer.Copy(w.texture, nil, nil))
	w.renderer.Present()
}

func (w *Window) PollEvent() sdl.Event {
	return sdl.PollEvent()
}

func (w *Window) Destroy() {
	util.Check(w.texture.Destroy())
	util.Check(w.renderer.Destroy())
	util.Check(w.window.Destroy())
	sdl.Quit()
}
