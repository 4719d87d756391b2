package imgx

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/John-Robertt/oldphoto/internal/infra/fsx"
)

// 默认滤镜参数（与历史输出的观感保持一致）。
const (
	DefaultQuality        = 90
	DefaultContrast       = 20
	DefaultSmoothWeight   = 20
	DefaultTextureOpacity = 0.35
)

// Filters 是“老照片”滤镜管线的全部外部协作者：解码、编码与四个滤镜。
//
// 约束：
// - 每个滤镜都消费一张输入、返回一张新分配的图；不修改输入（imaging 的所有操作都返回新图）
// - Filters 是值类型且不持有可变状态，可被多个 worker 并发调用
// - imaging 内部没有全局可变状态（已审计 v1.6.x）
type Filters struct {
	Quality         int
	ContrastPercent float64
	SmoothWeight    float64
	TextureOpacity  float64
}

// Default 返回使用默认参数的 Filters。
func Default() Filters {
	return Filters{
		Quality:         DefaultQuality,
		ContrastPercent: DefaultContrast,
		SmoothWeight:    DefaultSmoothWeight,
		TextureOpacity:  DefaultTextureOpacity,
	}
}

// Decode 读取并解码 path（JPEG/PNG 均可，按 EXIF 方向自动旋转）。
func (Filters) Decode(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, errors.New("图片尺寸无效")
	}
	return img, nil
}

// Encode 把 img 编码为 JPEG 并原子写入 path。
//
// 目标已存在时返回 os.ErrExist（不覆盖）；失败时不会留下半成品文件。
func (f Filters) Encode(img image.Image, path string) error {
	if img == nil {
		return errors.New("图片为空")
	}
	q := f.Quality
	if q <= 0 || q > 100 {
		q = DefaultQuality
	}

	var out bytes.Buffer
	if err := imaging.Encode(&out, img, imaging.JPEG, imaging.JPEGQuality(q)); err != nil {
		return err
	}
	name := filepath.Base(path)
	if strings.TrimSpace(name) == "" || name == "." || name == string(filepath.Separator) {
		return fmt.Errorf("非法输出路径：%q", path)
	}
	return fsx.WriteFileAtomicNoOverwrite(filepath.Dir(path), name, out.Bytes())
}
