package imgx

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

// Contrast 调整对比度；percentage 取 Filters.ContrastPercent（-100..100，正数增强）。
func (f Filters) Contrast(img image.Image) image.Image {
	return imaging.AdjustContrast(img, f.ContrastPercent)
}

// Smooth 用 3x3 加权均值核做平滑：中心权重为 SmoothWeight，周围 8 邻域权重为 1（归一化）。
// 权重 0 是合法的（只取邻域均值）；负数按默认值处理。
func (f Filters) Smooth(img image.Image) image.Image {
	w := f.SmoothWeight
	if w < 0 {
		w = DefaultSmoothWeight
	}
	kernel := [9]float64{
		1, 1, 1,
		1, w, 1,
		1, 1, 1,
	}
	return imaging.Convolve3x3(img, kernel, &imaging.ConvolveOptions{Normalize: true})
}

// Texture 把纸张纹理平铺后按 TextureOpacity 叠加到 img 上。
//
// 约束：texture 在整个并行阶段被所有 worker 共享，只能读取，绝不能修改。
// 这里只把它作为 draw.Draw 的 src，平铺结果写入每次新分配的图层。
func (f Filters) Texture(img, texture image.Image) image.Image {
	b := img.Bounds()
	tb := texture.Bounds()
	if tb.Dx() <= 0 || tb.Dy() <= 0 {
		return imaging.Clone(img)
	}

	layer := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y += tb.Dy() {
		for x := 0; x < b.Dx(); x += tb.Dx() {
			r := image.Rect(x, y, x+tb.Dx(), y+tb.Dy())
			draw.Draw(layer, r, texture, tb.Min, draw.Src)
		}
	}

	opacity := f.TextureOpacity
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return imaging.Overlay(img, layer, b.Min, opacity)
}

// Sepia 做经典的棕褐色调映射（alpha 保持不变）。
func (Filters) Sepia(img image.Image) image.Image {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		r, g, b := float64(c.R), float64(c.G), float64(c.B)
		return color.NRGBA{
			R: clamp8(0.393*r + 0.769*g + 0.189*b),
			G: clamp8(0.349*r + 0.686*g + 0.168*b),
			B: clamp8(0.272*r + 0.534*g + 0.131*b),
			A: c.A,
		}
	})
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
