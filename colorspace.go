package osd

import "github.com/gogpu/osd/internal/color"

// ColorspaceParams describes how the YUV samples of a frame map to RGB.
type ColorspaceParams = color.Params

// MatrixCoefficients identifies the luma coefficients of a colorspace.
type MatrixCoefficients = color.MatrixCoefficients

// Levels is the quantization range of a signal.
type Levels = color.Levels

// Colorspace constants.
const (
	MatrixBT601     = color.MatrixBT601
	MatrixBT709     = color.MatrixBT709
	MatrixSMPTE240M = color.MatrixSMPTE240M
	MatrixBT2020NCL = color.MatrixBT2020NCL

	LevelsTV = color.LevelsTV
	LevelsPC = color.LevelsPC
)

// DefaultColorspace returns BT.601 limited range video with neutral controls.
func DefaultColorspace() ColorspaceParams {
	return color.DefaultParams()
}

// Converter converts colors between RGB and YUV for one set of
// ColorspaceParams. Scalers receive one per pass.
type Converter = color.Converter

// NewConverter validates p and derives its conversion matrices.
func NewConverter(p ColorspaceParams) (*Converter, error) {
	return color.NewConverter(p)
}
