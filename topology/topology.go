// 路网拓扑解析：把世界后端的原始路段/车道编号映射为模块的规范化车道命名，
// 并把后端坐标适配为模块坐标（横轴翻转）。映射关系全部来自注入的配置表，
// 更换路网只需要替换数据，不需要改代码。
package topology

import (
	"fmt"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/platoon-merge-go/utils/config"
)

// UnknownLane 未知路段的哨兵车道标识
const UnknownLane = "unknown_0"

// Resolver 拓扑解析器
// 功能：维护路段映射表与车道布局表，提供车道标识/序号解析与布局查询
// 说明：全部查询只读，可在多个决策调用间并发共享
type Resolver struct {
	segments map[int32]config.SegmentRule // 原始路段ID→车道标识映射规则
	indexes  map[int32]config.SegmentRule // 原始路段ID→车道序号映射规则
	layouts  map[string]config.LaneLayout // 规范化车道标识→布局
}

// New 根据路网配置创建拓扑解析器
// 参数：net-路网配置（映射表与布局表）
// 返回：解析器实例
func New(net config.Network) *Resolver {
	return &Resolver{
		segments: lo.SliceToMap(net.Segments, func(r config.SegmentRule) (int32, config.SegmentRule) {
			return r.Segment, r
		}),
		indexes: lo.SliceToMap(net.IndexSegments, func(r config.SegmentRule) (int32, config.SegmentRule) {
			return r.Segment, r
		}),
		layouts: lo.SliceToMap(net.Lanes, func(l config.LaneLayout) (string, config.LaneLayout) {
			return l.Lane, l
		}),
	}
}

// Default 创建内置汇入路网的拓扑解析器
func Default() *Resolver {
	return New(config.DefaultNetwork())
}

// NormalizePosition 坐标适配
// 功能：把世界后端坐标转换为模块坐标
// 说明：后端与路网定义的横轴方向相反，故翻转Y符号，X/Z不变
func NormalizePosition(p geometry.Point) geometry.Point {
	return geometry.Point{X: p.X, Y: -p.Y, Z: p.Z}
}

// ResolveLane 解析规范化车道标识
// 功能：根据原始路段ID与原始车道编号得到edge_lane形式的车道标识
// 参数：segmentID-原始路段ID，rawLane-原始车道编号（后端计数方式）
// 返回：车道标识与是否命中映射表
// 算法说明：
// 1. 查映射表得到edge名与编号规则
// 2. 车道编号 = 原始编号 + 偏移量；Absolute规则直接取偏移量本身
// 3. 未命中时退化为哨兵车道unknown_0，由调用方决定是否告警
func (r *Resolver) ResolveLane(segmentID, rawLane int32) (string, bool) {
	rule, ok := r.segments[segmentID]
	if !ok {
		return UnknownLane, false
	}
	n := rule.Offset
	if !rule.Absolute {
		n += rawLane
	}
	return fmt.Sprintf("%s_%d", rule.Edge, n), true
}

// ResolveIndex 解析规范化车道序号
// 功能：根据原始路段ID与原始车道编号得到车道序号
// 说明：未命中映射表时退化为0
func (r *Resolver) ResolveIndex(segmentID, rawLane int32) int32 {
	rule, ok := r.indexes[segmentID]
	if !ok {
		return 0
	}
	if rule.Absolute {
		return rule.Offset
	}
	return rawLane + rule.Offset
}

// Layout 查询车道布局
// 功能：返回指定车道的邻接布局
// 说明：布局表中不存在的车道返回零值布局（双侧有车道、非汇入段）
func (r *Resolver) Layout(laneID string) config.LaneLayout {
	return r.layouts[laneID]
}
