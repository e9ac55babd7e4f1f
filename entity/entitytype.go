package entity

import (
	"fmt"

	"git.fiblab.net/general/common/v2/geometry"
)

// 方位常量
const (
	LEFT  = 0 // 左侧
	RIGHT = 1 // 右侧
)

// LightState 车辆灯光状态（由外部世界后端提供的原始信号）
type LightState int32

const (
	LIGHT_STATE_NONE          LightState = iota // 无灯光
	LIGHT_STATE_RIGHT_BLINKER                   // 右转向灯
	LIGHT_STATE_LEFT_BLINKER                    // 左转向灯
	LIGHT_STATE_BRAKE                           // 刹车灯
	LIGHT_STATE_OTHER                           // 其他灯光（雾灯、远光等，对决策无意义）
)

// SignalState 4位信号标志集合，作为模糊推理输入的信号编码
type SignalState uint8

const (
	SIGNAL_NONE  SignalState = 0b0000 // 无信号、无车或无车道
	SIGNAL_RIGHT SignalState = 0b0001 // 右转向
	SIGNAL_LEFT  SignalState = 0b0010 // 左转向
	SIGNAL_BRAKE SignalState = 0b1000 // 刹车
)

// SignalFromLight 将灯光状态映射为信号标志
// 功能：把后端的灯光枚举转换为决策模块使用的4位信号编码
// 参数：light-灯光状态
// 返回：信号标志
// 说明：与决策无关的灯光（雾灯等）一律编码为SIGNAL_NONE
func SignalFromLight(light LightState) SignalState {
	switch light {
	case LIGHT_STATE_RIGHT_BLINKER:
		return SIGNAL_RIGHT
	case LIGHT_STATE_LEFT_BLINKER:
		return SIGNAL_LEFT
	case LIGHT_STATE_BRAKE:
		return SIGNAL_BRAKE
	default:
		return SIGNAL_NONE
	}
}

// VehicleKinematics 单车运动学/拓扑记录，每个感知周期重新构建，不做持久化
type VehicleKinematics struct {
	Speed     float64        // 速度大小（三维速度模长，米/秒）
	Position  geometry.Point // 模块坐标系下的位置（横轴已翻转）
	LaneID    string         // 规范化车道标识，如gneE4_1
	LaneIndex int32          // 规范化车道序号
	Signal    SignalState    // 信号编码
}

func (k *VehicleKinematics) String() string {
	return fmt.Sprintf("Kinematics{v=%.2f, pos=(%.2f,%.2f), lane=%s(%d), signal=%04b}",
		k.Speed, k.Position.X, k.Position.Y, k.LaneID, k.LaneIndex, k.Signal)
}

// ContextSnapshot 周边车辆上下文快照：车辆ID到运动学记录的映射
// 说明：只包含感知半径内的车辆，不包含参考车辆自身；每个决策周期重建
type ContextSnapshot map[int32]*VehicleKinematics

// world包的依赖倒置
type IVehicle interface {
	ID() int32                // 获取车辆ID
	Position() geometry.Point // 获取车辆原始位置（世界后端坐标系）
	Velocity() geometry.Point // 获取车辆三维速度
	SegmentID() int32         // 获取车辆所在的原始路段ID
	RawLane() int32           // 获取车辆所在的原始车道编号（后端计数方式）
	Light() LightState        // 获取车辆灯光状态
}

// 世界查询接口，由外部仿真后端或world包的内存实现提供
type IWorld interface {
	Vehicles() []IVehicle                // 获取所有在世车辆
	GetOrError(id int32) (IVehicle, error) // 根据ID获取车辆
}
