package sensor

import (
	"math"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/platoon-merge-go/entity"
	"github.com/tsinghua-fib-lab/platoon-merge-go/topology"
)

// Sensor 上下文感知器
// 功能：面向参考车辆构建感知半径内的周边车辆上下文快照
// 说明：只读访问世界状态，自身无状态，可在多个决策调用间共享
type Sensor struct {
	world       entity.IWorld
	resolver    *topology.Resolver
	sensorRange float64 // 感知半径（米）
}

// New 创建上下文感知器
// 参数：world-世界查询接口，resolver-拓扑解析器，sensorRange-感知半径
func New(world entity.IWorld, resolver *topology.Resolver, sensorRange float64) *Sensor {
	return &Sensor{
		world:       world,
		resolver:    resolver,
		sensorRange: sensorRange,
	}
}

// Sense 构建参考车辆的上下文快照
// 功能：遍历所有在世车辆，收集感知半径内每辆车的运动学/拓扑记录
// 参数：ref-参考车辆
// 返回：车辆ID→运动学记录的快照（不含参考车辆自身）
// 算法说明：
// 1. 在模块坐标系下计算平面欧氏距离，距离≤感知半径且ID不同的车辆入选
// 2. 并行构建入选车辆的运动学记录（只读世界访问，可安全并行）
// 3. 快照为临时数据，每个决策周期重建，不跨周期保留任何状态
func (s *Sensor) Sense(ref entity.IVehicle) entity.ContextSnapshot {
	origin := topology.NormalizePosition(ref.Position())
	inRange := lo.Filter(s.world.Vehicles(), func(v entity.IVehicle, _ int) bool {
		if v.ID() == ref.ID() {
			return false
		}
		p := topology.NormalizePosition(v.Position())
		return math.Hypot(p.X-origin.X, p.Y-origin.Y) <= s.sensorRange
	})
	type record struct {
		id int32
		k  *entity.VehicleKinematics
	}
	records := parallel.GoMap(inRange, func(v entity.IVehicle) record {
		return record{id: v.ID(), k: s.observe(v)}
	})
	return lo.SliceToMap(records, func(r record) (int32, *entity.VehicleKinematics) {
		return r.id, r.k
	})
}

// Observe 构建参考车辆自身的运动学记录
// 说明：快照不包含参考车辆，自车记录用与周边车辆相同的规则单独构建
func (s *Sensor) Observe(ref entity.IVehicle) *entity.VehicleKinematics {
	return s.observe(ref)
}

// observe 构建单辆车的运动学记录
// 算法说明：
// 1. 速度取三维速度模长
// 2. 位置经坐标适配（横轴翻转）
// 3. 车道标识/序号查拓扑映射表，未命中退化为哨兵车道并告警（非致命）
// 4. 灯光状态映射为4位信号编码
func (s *Sensor) observe(v entity.IVehicle) *entity.VehicleKinematics {
	vel := v.Velocity()
	laneID, ok := s.resolver.ResolveLane(v.SegmentID(), v.RawLane())
	if !ok {
		log.Warnf("vehicle %d on unmapped segment %d, degrade to sentinel lane", v.ID(), v.SegmentID())
	}
	return &entity.VehicleKinematics{
		Speed:     math.Sqrt(vel.X*vel.X + vel.Y*vel.Y + vel.Z*vel.Z),
		Position:  topology.NormalizePosition(v.Position()),
		LaneID:    laneID,
		LaneIndex: s.resolver.ResolveIndex(v.SegmentID(), v.RawLane()),
		Signal:    entity.SignalFromLight(v.Light()),
	}
}
