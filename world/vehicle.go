package world

import (
	"fmt"
	"math"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/tsinghua-fib-lab/platoon-merge-go/entity"
	"github.com/tsinghua-fib-lab/platoon-merge-go/utils/container"
)

// Vehicle 内存世界中的车辆
// 功能：实现entity.IVehicle，提供场景运行与测试所需的最小车辆状态
// 说明：运动学刻意保持简单（沿纵轴匀速推进+速度指令），
// 真实车辆动力学由外部执行层负责，不在本模块范围内
type Vehicle struct {
	container.IncrementalItemBase

	id      int32
	pos     geometry.Point // 世界后端坐标系下的位置
	v       float64        // 当前速度（米/秒，沿行驶方向）
	segment int32          // 原始路段ID
	rawLane int32          // 原始车道编号
	light   entity.LightState

	targetV float64 // 被命令的目标速度，负值表示无指令
}

// NewVehicle 创建车辆
// 参数：id-车辆ID，pos-初始位置（世界后端坐标系），speed-初始速度，
// segment-原始路段ID，rawLane-原始车道编号
func NewVehicle(id int32, pos geometry.Point, speed float64, segment, rawLane int32) *Vehicle {
	return &Vehicle{
		id:      id,
		pos:     pos,
		v:       speed,
		segment: segment,
		rawLane: rawLane,
		light:   entity.LIGHT_STATE_NONE,
		targetV: -1,
	}
}

func (v *Vehicle) String() string {
	return fmt.Sprintf("Vehicle %d", v.id)
}

// 获取车辆ID
func (v *Vehicle) ID() int32 {
	return v.id
}

// 获取车辆原始位置（世界后端坐标系）
func (v *Vehicle) Position() geometry.Point {
	return v.pos
}

// 获取车辆三维速度，行驶方向沿纵轴
func (v *Vehicle) Velocity() geometry.Point {
	return geometry.Point{X: v.v}
}

// 获取车辆所在的原始路段ID
func (v *Vehicle) SegmentID() int32 {
	return v.segment
}

// 获取车辆所在的原始车道编号
func (v *Vehicle) RawLane() int32 {
	return v.rawLane
}

// 获取车辆灯光状态
func (v *Vehicle) Light() entity.LightState {
	return v.light
}

// SetLight 设置车辆灯光状态
func (v *Vehicle) SetLight(light entity.LightState) {
	v.light = light
}

// SetTargetSpeed 接收速度指令（下个更新步生效）
func (v *Vehicle) SetTargetSpeed(target float64) {
	v.targetV = math.Max(target, 0)
}

// update 推进一个控制步
// 功能：速度指令生效并沿纵轴推进位置
// 说明：减速指令点亮刹车灯，供周边车辆的信号特征感知
func (v *Vehicle) update(dt float64) {
	if v.targetV >= 0 {
		if v.targetV < v.v {
			v.light = entity.LIGHT_STATE_BRAKE
		} else {
			v.light = entity.LIGHT_STATE_NONE
		}
		v.v = v.targetV
		v.targetV = -1
	}
	v.pos.X += v.v * dt
}
