package utils

// PlatformFeeRate is the percentage kept by the platform on each payment.
const PlatformFeeRate = 10

// PlatformFee computes the fee on a gross amount in cents, floor division.
func PlatformFee(gross int) int {
	return gross * PlatformFeeRate / 100
}
