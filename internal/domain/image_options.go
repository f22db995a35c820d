package domain

import (
	"fmt"
	"strings"
)

// AspectRatio は画像生成で指定できるアスペクト比です
type AspectRatio string

const (
	AspectRatioSquare    AspectRatio = "1:1"
	AspectRatioLandscape AspectRatio = "16:9"
	AspectRatioPortrait  AspectRatio = "9:16"
	AspectRatioStandard  AspectRatio = "4:3"
	AspectRatioTall      AspectRatio = "3:4"
)

// AllAspectRatios はすべてのAspectRatioを返します
func AllAspectRatios() []AspectRatio {
	return []AspectRatio{
		AspectRatioSquare,
		AspectRatioLandscape,
		AspectRatioPortrait,
		AspectRatioStandard,
		AspectRatioTall,
	}
}

// ParseAspectRatio は文字列をAspectRatioに変換します
func ParseAspectRatio(value string) (AspectRatio, error) {
	value = strings.TrimSpace(value)
	for _, ratio := range AllAspectRatios() {
		if string(ratio) == value {
			return ratio, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAspectRatio, value)
}

// String はAspectRatioの文字列表現を返します
func (r AspectRatio) String() string {
	return string(r)
}

// ImageDimensionOption はLinkedIn向け画像サイズのカタログ項目です
type ImageDimensionOption struct {
	Label       string
	AspectRatio AspectRatio
	Description string
}

// DisplayName は選択UI向けの表示名を返します
func (o ImageDimensionOption) DisplayName() string {
	return fmt.Sprintf("%s - %s", o.Label, o.Description)
}

// imageDimensionOptions はLinkedIn向け画像サイズのカタログです
// 16:9 は用途の異なる2項目として登録されているため、選択は位置で行います
var imageDimensionOptions = []ImageDimensionOption{
	{"Square Post (1:1)", AspectRatioSquare, "Ideal for feed posts, 1080x1080px"},
	{"Portrait Post (9:16)", AspectRatioPortrait, "Taller post format, 1080x1920px"},
	{"Landscape / Link Image (16:9)", AspectRatioLandscape, "Best for article links, 1200x628px"},
	{"Profile Banner (16:9)", AspectRatioLandscape, "1584x396px (16:9 image may need cropping)"},
}

// AllImageDimensionOptions はカタログのコピーを順序どおりに返します
func AllImageDimensionOptions() []ImageDimensionOption {
	options := make([]ImageDimensionOption, len(imageDimensionOptions))
	copy(options, imageDimensionOptions)
	return options
}

// DefaultImageDimensionOption はカタログの先頭項目を返します
func DefaultImageDimensionOption() ImageDimensionOption {
	return imageDimensionOptions[0]
}

// ImageDimensionOptionAt は指定位置のカタログ項目を返します
func ImageDimensionOptionAt(index int) (ImageDimensionOption, bool) {
	if index < 0 || index >= len(imageDimensionOptions) {
		return ImageDimensionOption{}, false
	}
	return imageDimensionOptions[index], true
}
