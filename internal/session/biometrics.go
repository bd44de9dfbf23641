package session

import "context"

// BiometryKind identifies the sensor backing a biometric prompt.
type BiometryKind string

const (
	BiometryFaceID  BiometryKind = "FaceID"
	BiometryTouchID BiometryKind = "TouchID"
	BiometryGeneric BiometryKind = "Biometrics"
	BiometryNone    BiometryKind = ""
)

// Availability reports whether a biometric sensor can be used and which kind.
type Availability struct {
	Available bool
	Kind      BiometryKind
}

// BiometricCapability is the narrow interface to the platform's biometric
// sensor. The session layer never talks to hardware directly.
type BiometricCapability interface {
	// IsAvailable reports sensor presence. Probe failures degrade to
	// "not available" rather than surfacing an error to callers.
	IsAvailable(ctx context.Context) Availability

	// Authenticate runs the platform prompt and reports whether the user
	// passed. A false return is a normal outcome, not an error.
	Authenticate(ctx context.Context) (bool, error)
}

// KindName maps a BiometryKind to its user-facing name.
func KindName(kind BiometryKind) string {
	switch kind {
	case BiometryFaceID:
		return "Face ID"
	case BiometryTouchID:
		return "Touch ID"
	case BiometryGeneric:
		return "Biometrics"
	default:
		return "Biometric Authentication"
	}
}

// StaticCapability is a fixed-outcome capability for tests and environments
// without a sensor.
type StaticCapability struct {
	Availability Availability
	Result       bool
	Err          error
}

func (c StaticCapability) IsAvailable(ctx context.Context) Availability {
	return c.Availability
}

func (c StaticCapability) Authenticate(ctx context.Context) (bool, error) {
	return c.Result, c.Err
}
