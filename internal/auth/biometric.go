package auth

// BiometricStatus is the result of probing the platform's biometric
// capability.
type BiometricStatus string

const (
	BiometricAvailable          BiometricStatus = "available"
	BiometricNotAvailable       BiometricStatus = "not_available"
	BiometricNotEnrolled        BiometricStatus = "not_enrolled"
	BiometricHardwareNotPresent BiometricStatus = "hardware_not_present"
)

// BiometricProbe reports whether biometric authentication can be offered.
// The concrete probe is platform glue supplied by the embedding client;
// the server itself has no sensor.
type BiometricProbe interface {
	Status() BiometricStatus
}

// StaticProbe is a BiometricProbe with a fixed answer. Headless deployments
// use StaticProbe(BiometricHardwareNotPresent).
type StaticProbe BiometricStatus

// Status implements BiometricProbe.
func (p StaticProbe) Status() BiometricStatus { return BiometricStatus(p) }
