package demo

import (
	"math"
	"time"
)

const carField = "car"

// Car messages shown on the dashboard.
const (
	MsgCarReady       = "Car is ready"
	MsgBatteryTooLow  = "Battery too low! Please recharge."
	MsgEngineStarting = "Electric engine starting..."
	MsgCarStopped     = "Car stopped"
	MsgStartFirst     = "Start the car first!"
	MsgPowerReduced   = "Low battery! Power reduced."
	MsgAccelerating   = "Silent electric acceleration"
	MsgBraking        = "Regenerative braking engaged"
	MsgStopToRecharge = "Please stop the car before recharging!"
	MsgRecharged      = "Battery recharged!"
)

// CarSpec configures the electric car simulator. Zero values take the
// defaults below.
type CarSpec struct {
	MaxSpeed     int           `yaml:"max_speed,omitempty" json:"max_speed,omitempty"`
	SpeedStep    int           `yaml:"speed_step,omitempty" json:"speed_step,omitempty"`
	BrakeStep    int           `yaml:"brake_step,omitempty" json:"brake_step,omitempty"`
	TickInterval time.Duration `yaml:"tick_interval,omitempty" json:"tick_interval,omitempty"`
}

// CarState is the dashboard of the simulator. Battery and Efficiency are
// percentages; efficiency never drops below 50.
type CarState struct {
	Speed      int     `json:"speed"`
	Started    bool    `json:"started"`
	Battery    float64 `json:"battery"`
	Efficiency float64 `json:"efficiency"`
	Message    string  `json:"message"`
	Draining   bool    `json:"draining"`
}

const (
	minOperatingBattery = 5.0
	minEfficiency       = 50.0
)

func (c *CarSpec) initial() *CarState {
	return &CarState{Battery: 100, Efficiency: 100, Message: MsgCarReady}
}

func (c *CarSpec) maxSpeed() int {
	if c.MaxSpeed <= 0 {
		return 100
	}
	return c.MaxSpeed
}

func (c *CarSpec) speedStep() int {
	if c.SpeedStep <= 0 {
		return 20
	}
	return c.SpeedStep
}

func (c *CarSpec) brakeStep() int {
	if c.BrakeStep <= 0 {
		return 30
	}
	return c.BrakeStep
}

func (c *CarSpec) tickInterval() time.Duration {
	if c.TickInterval <= 0 {
		return time.Second
	}
	return c.TickInterval
}

func (c *CarSpec) apply(car *CarState, k Kind) {
	switch k {
	case StartEngine:
		if car.Started {
			car.Started = false
			car.Speed = 0
			car.Message = MsgCarStopped
			return
		}
		if car.Battery < minOperatingBattery {
			car.Message = MsgBatteryTooLow
			return
		}
		car.Started = true
		car.Speed = 0
		car.Message = MsgEngineStarting
	case Accelerate:
		if !car.Started {
			car.Message = MsgStartFirst
			return
		}
		if car.Battery < minOperatingBattery {
			car.Message = MsgPowerReduced
			return
		}
		car.Speed = min(car.Speed+c.speedStep(), c.maxSpeed())
		car.Message = MsgAccelerating
	case Brake:
		if !car.Started {
			return
		}
		slowed := max(car.Speed-c.brakeStep(), 0)
		reduction := car.Speed - slowed
		car.Speed = slowed
		car.Battery = math.Min(100, car.Battery+float64(reduction)*0.1)
		car.Message = MsgBraking
	case Recharge:
		if car.Started {
			car.Message = MsgStopToRecharge
			return
		}
		car.Battery = 100
		car.Efficiency = 100
		car.Message = MsgRecharged
	}
}

// drain runs once per tick while the car is moving.
func (c *CarSpec) drain(car *CarState) {
	if !car.Started || car.Speed == 0 {
		return
	}
	car.Battery = math.Max(0, car.Battery-float64(car.Speed)*0.01)
	car.Efficiency = math.Max(minEfficiency, car.Efficiency-float64(car.Speed)*0.02)
}
