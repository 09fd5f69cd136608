package tariff

// VolumetricFactor converts cargo volume to an equivalent weight: one cubic
// meter is billed as 333 kg, the road-freight convention.
const VolumetricFactor = 333.0

// ChargeableWeight returns the billable weight for a palletized shipment: the
// greater of the actual weight and the volumetric equivalent. No rounding is
// applied here.
func ChargeableWeight(length, width, height, unitWeight float64, quantity int) float64 {
	actual := unitWeight * float64(quantity)
	volumetric := length * width * height * float64(quantity) * VolumetricFactor
	if volumetric > actual {
		return volumetric
	}
	return actual
}
