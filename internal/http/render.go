package http

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"

	"github.com/davidbz/webcalc/internal/domain"
)

// maxExactInt64 bounds the whole numbers that convert to int64 without overflow.
const maxExactInt64 = 1 << 63

// renderResult formats a raw result for the response body. Whole numbers are
// written as integer literals; everything else uses the shortest float form.
// JSON has no NaN or Inf, so non-finite results are rejected.
func renderResult(v float64) (json.Number, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", domain.InvalidDomain("result is not a finite number")
	}

	if v != math.Trunc(v) {
		return json.Number(strconv.FormatFloat(v, 'g', -1, 64)), nil
	}

	if v > -maxExactInt64 && v < maxExactInt64 {
		return json.Number(strconv.FormatInt(int64(v), 10)), nil
	}

	return json.Number(new(big.Float).SetFloat64(v).Text('f', 0)), nil
}
