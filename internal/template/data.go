package template

import (
	"strconv"
)

// BuildBagDataMap returns the data of the bag_* templates. Size is empty for simple entries.
func BuildBagDataMap(productName, size string, quantity int) map[string]string {
	return map[string]string{
		"ProductName": productName,
		"Size":        size,
		"Quantity":    strconv.Itoa(quantity),
	}
}

func BuildFailureDataMap(reason string) map[string]string {
	return map[string]string{
		"Reason": reason,
	}
}

func BuildOrderDataMap(orderNumber, email string) map[string]string {
	return map[string]string{
		"OrderNumber": orderNumber,
		"Email":       email,
	}
}
