package physics

import "github.com/go-gl/mathgl/mgl64"

// ChargeRatio maps a hold duration onto [0, 1]. Holding for maxChargeTime or
// longer gives a full charge. A non-positive maxChargeTime means every hold is
// a full charge.
func ChargeRatio(chargeElapsed, maxChargeTime float64) float64 {
	if maxChargeTime <= 0 {
		return 1
	}
	if !(chargeElapsed > 0) {
		return 0
	}
	if chargeElapsed >= maxChargeTime {
		return 1
	}
	return chargeElapsed / maxChargeTime
}

// ComputeLaunchVelocity turns an aim point and a charge duration into a launch
// velocity. The direction points from currentPosition to aimWorldPoint and the
// speed grows linearly with the charge up to maxSpeed.
// An aim point on top of the body has no direction and yields zero velocity.
func ComputeLaunchVelocity(currentPosition, aimWorldPoint mgl64.Vec3, chargeElapsed, maxSpeed, maxChargeTime float64) mgl64.Vec3 {
	dir, ok := Direction(aimWorldPoint.Sub(currentPosition))
	if !ok {
		return mgl64.Vec3{}
	}

	return dir.Mul(LaunchSpeed(chargeElapsed, maxSpeed, maxChargeTime))
}

// LaunchSpeed is the magnitude ComputeLaunchVelocity would produce for a valid aim
func LaunchSpeed(chargeElapsed, maxSpeed, maxChargeTime float64) float64 {
	return maxSpeed * ChargeRatio(chargeElapsed, maxChargeTime)
}
