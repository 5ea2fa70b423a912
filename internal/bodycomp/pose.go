package bodycomp

import (
	"fmt"
	"math"
	"strings"
)

// Landmark names a vision provider must report for a full-body pose.
const (
	LeftShoulder  = "left_shoulder"
	RightShoulder = "right_shoulder"
	LeftHip       = "left_hip"
	RightHip      = "right_hip"
	LeftKnee      = "left_knee"
	RightKnee     = "right_knee"
	LeftAnkle     = "left_ankle"
	RightAnkle    = "right_ankle"
)

// RequiredLandmarks must all be present before any analysis runs.
var RequiredLandmarks = []string{
	LeftShoulder, RightShoulder, LeftHip, RightHip,
	LeftKnee, RightKnee, LeftAnkle, RightAnkle,
}

// Point is a 2D landmark coordinate in image space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pose is the landmark set a vision provider detected in a photo.
type Pose struct {
	Landmarks map[string]Point `json:"landmarks"`
}

// Missing lists required landmarks absent from the pose, in RequiredLandmarks order.
func (p Pose) Missing() []string {
	var missing []string
	for _, name := range RequiredLandmarks {
		if _, ok := p.Landmarks[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// PoseIncompleteError means the photo did not capture the full body; the user
// should retake it.
type PoseIncompleteError struct {
	Missing []string
}

func (e *PoseIncompleteError) Error() string {
	return fmt.Sprintf("pose incomplete, missing %s: please retake the photo showing your full body", strings.Join(e.Missing, ", "))
}

// Measurements are body proportions derived from a pose, in image units.
type Measurements struct {
	ShoulderWidth float64 `json:"shoulder_width"`
	HipWidth      float64 `json:"hip_width"`
	TorsoLength   float64 `json:"torso_length"`
	LegLength     float64 `json:"leg_length"`
}

// MeasurementsFromPose derives proportions from a complete pose. The caller
// must have checked Missing first.
func MeasurementsFromPose(p Pose) Measurements {
	lm := p.Landmarks
	midShoulder := midpoint(lm[LeftShoulder], lm[RightShoulder])
	midHip := midpoint(lm[LeftHip], lm[RightHip])
	leftLeg := dist(lm[LeftHip], lm[LeftKnee]) + dist(lm[LeftKnee], lm[LeftAnkle])
	rightLeg := dist(lm[RightHip], lm[RightKnee]) + dist(lm[RightKnee], lm[RightAnkle])
	return Measurements{
		ShoulderWidth: dist(lm[LeftShoulder], lm[RightShoulder]),
		HipWidth:      dist(lm[LeftHip], lm[RightHip]),
		TorsoLength:   dist(midShoulder, midHip),
		LegLength:     (leftLeg + rightLeg) / 2,
	}
}

// Slice returns the measurements in feature order.
func (m Measurements) Slice() []float64 {
	return []float64{m.ShoulderWidth, m.HipWidth, m.TorsoLength, m.LegLength}
}

// measurementsFromSlice is the inverse of Slice; short input yields ok=false.
func measurementsFromSlice(v []float64) (Measurements, bool) {
	if len(v) < 4 {
		return Measurements{}, false
	}
	return Measurements{ShoulderWidth: v[0], HipWidth: v[1], TorsoLength: v[2], LegLength: v[3]}, true
}

// ShoulderHipRatio is 0 when hip width is unknown.
func (m Measurements) ShoulderHipRatio() float64 {
	if m.HipWidth <= 0 {
		return 0
	}
	return m.ShoulderWidth / m.HipWidth
}

func midpoint(a, b Point) Point { return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2} }

func dist(a, b Point) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }
