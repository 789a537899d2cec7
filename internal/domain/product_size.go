package domain

import (
	"cmp"
	"slices"
	"strings"
)

type ProductSize string

// remember to add new sizes to the sizeRanks map
const (
	ProductSizeXS ProductSize = "XS"
	ProductSizeS  ProductSize = "S"
	ProductSizeM  ProductSize = "M"
	ProductSizeL  ProductSize = "L"
	ProductSizeXL ProductSize = "XL"
)

// sizeRanks orders sizes from smallest to largest, it doubles as the set of valid sizes.
var sizeRanks = map[ProductSize]int{
	ProductSizeXS: 0,
	ProductSizeS:  1,
	ProductSizeM:  2,
	ProductSizeL:  3,
	ProductSizeXL: 4,
}

// ToProductSize accepts a size label in any case and returns its canonical upper-case form.
func ToProductSize(s string) (ProductSize, error) {
	size := ProductSize(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := sizeRanks[size]; ok {
		return size, nil
	}

	return "", NewValidationError("product_size", "invalid product size")
}

func ProductSizes() []ProductSize {
	result := make([]ProductSize, 0, len(sizeRanks))
	for size := range sizeRanks {
		result = append(result, size)
	}
	sortSizes(result)
	return result
}

func sortSizes(sizes []ProductSize) {
	slices.SortFunc(sizes, compareSizes)
}

// compareSizes puts known sizes in rank order, before any legacy labels.
func compareSizes(a, b ProductSize) int {
	ra, okA := sizeRanks[a]
	rb, okB := sizeRanks[b]
	switch {
	case okA && okB:
		return cmp.Compare(ra, rb)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return strings.Compare(string(a), string(b))
	}
}
