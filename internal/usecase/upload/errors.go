// Package upload provides the image upload use cases: accepting temp images
// and reclaiming the ones never attached to an article or comment.
package upload

import "errors"

// ErrUnsupportedImageType indicates a content type outside the accepted
// image formats.
var ErrUnsupportedImageType = errors.New("image type not supported")
