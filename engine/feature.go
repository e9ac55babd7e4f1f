package engine

import (
	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/tsinghua-fib-lab/platoon-merge-go/entity"
	"github.com/tsinghua-fib-lab/platoon-merge-go/topology"
	"github.com/tsinghua-fib-lab/platoon-merge-go/utils/config"
)

// 特征槽位顺序：三车道×前后
const (
	LEFT_AHEAD = iota
	LEFT_BEHIND
	SAME_AHEAD
	SAME_BEHIND
	RIGHT_AHEAD
	RIGHT_BEHIND
	NUM_SLOTS
)

// 特征向量固定模式：6距离+6速度+6信号+自车位置(x,y)+自车速度
const (
	NUM_FEATURES = 3*NUM_SLOTS + 3

	offSpeed     = NUM_SLOTS     // 速度段起始下标
	offSignal    = 2 * NUM_SLOTS // 信号段起始下标
	offX         = 3 * NUM_SLOTS // 自车纵坐标下标
	offY         = offX + 1      // 自车横坐标下标
	offSelfSpeed = offY + 1      // 自车速度下标
)

// FeatureVector 21维定长特征向量
type FeatureVector [NUM_FEATURES]float64

// Extractor 特征提取器
// 功能：把单车的上下文快照变换为固定模式的数值特征向量
// 说明：只依赖快照的数据结构，不依赖感知器本身；无内部状态
type Extractor struct {
	resolver *topology.Resolver
	s        config.Sentinel
	net      config.Network
}

// NewExtractor 创建特征提取器
// 参数：resolver-拓扑解析器，rc-运行时配置（哨兵常量与路网参数）
func NewExtractor(resolver *topology.Resolver, rc *config.RuntimeConfig) *Extractor {
	return &Extractor{
		resolver: resolver,
		s:        rc.S,
		net:      rc.Net,
	}
}

// neighbor 前后车搜索的候选记录
type neighbor struct {
	id int32
	k  *entity.VehicleKinematics
	dx float64 // 相对自车的纵向偏移，正为前方
}

// closest 从候选中确定最近前车与最近后车
// 功能：最近前车为纵向偏移最小的正偏移，最近后车为偏移最大的负偏移
// 返回：前车与后车候选，不存在时为nil
// 说明：偏移恰为0的候选（纵向并排）不计入前后任一侧；
// 偏移相等时取ID较小者，保证遍历顺序无关的确定性结果
func closest(candidates []neighbor) (ahead, behind *neighbor) {
	for i := range candidates {
		c := &candidates[i]
		if c.dx > 0 {
			if ahead == nil || c.dx < ahead.dx || (c.dx == ahead.dx && c.id < ahead.id) {
				ahead = c
			}
		} else if c.dx < 0 {
			if behind == nil || c.dx > behind.dx || (c.dx == behind.dx && c.id < behind.id) {
				behind = c
			}
		}
	}
	return
}

// Extract 提取特征向量
// 功能：根据自车记录与上下文快照生成21维特征向量
// 参数：own-自车运动学记录，snapshot-上下文快照（不含自车）
// 返回：特征向量
// 算法说明：
// 1. 距离槽位初始化为MaxDistance哨兵，速度槽位为MaxSpeed哨兵，信号为0
// 2. 按自车所在车道分两种情形：汇入段只计算本车道前后车，
//    主线段对左/本/右三条车道分别计算前后车
// 3. 哨兵后处理：布局表标记无左（右）车道时，仍处于封顶值的对应槽位记-1，
//    以区分"该侧无车"与"该侧无车道"
// 4. 按固定顺序拼接距离、速度、信号、自车位置与速度
func (e *Extractor) Extract(own *entity.VehicleKinematics, snapshot entity.ContextSnapshot) FeatureVector {
	var distances, speeds, signals [NUM_SLOTS]float64
	for i := 0; i < NUM_SLOTS; i++ {
		distances[i] = e.s.MaxDistance
		speeds[i] = e.s.MaxSpeed
	}

	layout := e.resolver.Layout(own.LaneID)
	if layout.MergeApproach {
		e.extractMergeApproach(own, snapshot, &distances, &speeds, &signals)
	} else {
		e.extractMainline(own, snapshot, &distances, &speeds, &signals)
	}

	// 哨兵后处理：无车道一侧仍保持封顶值的槽位改记-1
	if layout.NoLeft {
		e.capMissingLane(&distances, &speeds, LEFT_AHEAD, LEFT_BEHIND)
	}
	if layout.NoRight {
		e.capMissingLane(&distances, &speeds, RIGHT_AHEAD, RIGHT_BEHIND)
	}

	var fv FeatureVector
	copy(fv[0:offSpeed], distances[:])
	copy(fv[offSpeed:offSignal], speeds[:])
	copy(fv[offSignal:offX], signals[:])
	fv[offX] = own.Position.X
	fv[offY] = own.Position.Y
	fv[offSelfSpeed] = own.Speed
	return fv
}

// extractMergeApproach 汇入段（单车道）情形
// 功能：只在配置的汇入车道上搜索本车道前后车，左右槽位保持哨兵
func (e *Extractor) extractMergeApproach(
	own *entity.VehicleKinematics, snapshot entity.ContextSnapshot,
	distances, speeds, signals *[NUM_SLOTS]float64,
) {
	candidates := make([]neighbor, 0, len(snapshot))
	for id, k := range snapshot {
		if k.LaneID != e.net.MergeLane {
			continue
		}
		candidates = append(candidates, neighbor{id: id, k: k, dx: k.Position.X - own.Position.X})
	}
	ahead, behind := closest(candidates)
	fillSlot(distances, speeds, signals, SAME_AHEAD, ahead)
	fillSlot(distances, speeds, signals, SAME_BEHIND, behind)
}

// extractMainline 主线（多车道）情形
// 功能：对左/本/右三条车道分别搜索前后车并填入对应槽位
// 算法说明：
// 1. 自车车道中心按±LaneBand容差带匹配；落在所有带外时就近夹取并告警
//    （上游正常布置下不会发生，发生时按降级数据处理而不中断决策）
// 2. 候选车道集合为{左邻、本车道、右邻}，裁剪到有效中心范围
// 3. 每条车道的候选为横坐标与该车道中心相差小于LaneMatch的车辆
// 4. 槽位归属由(车道中心-自车横坐标)的符号决定：正为左、零为本车道、负为右
func (e *Extractor) extractMainline(
	own *entity.VehicleKinematics, snapshot entity.ContextSnapshot,
	distances, speeds, signals *[NUM_SLOTS]float64,
) {
	centers := e.net.LaneCenters
	ownLane := -1
	for i, c := range centers {
		if mathutil.Abs(own.Position.Y-c) < e.net.LaneBand {
			ownLane = i
			break
		}
	}
	if ownLane < 0 {
		// 带间空隙：就近夹取（文档化的降级策略）
		best := mathutil.INF
		for i, c := range centers {
			if d := mathutil.Abs(own.Position.Y - c); d < best {
				best = d
				ownLane = i
			}
		}
		log.Warnf("lateral %.2f outside all lane bands on %s, clamp to lane %d",
			own.Position.Y, own.LaneID, ownLane)
	}

	for li := ownLane - 1; li <= ownLane+1; li++ {
		if li < 0 || li >= len(centers) {
			continue
		}
		y := centers[li]
		candidates := make([]neighbor, 0, len(snapshot))
		for id, k := range snapshot {
			if mathutil.Abs(k.Position.Y-y) >= e.net.LaneMatch {
				continue
			}
			candidates = append(candidates, neighbor{id: id, k: k, dx: k.Position.X - own.Position.X})
		}
		ahead, behind := closest(candidates)

		var aheadSlot, behindSlot int
		switch {
		case y-own.Position.Y > 0:
			aheadSlot, behindSlot = LEFT_AHEAD, LEFT_BEHIND
		case y-own.Position.Y == 0:
			aheadSlot, behindSlot = SAME_AHEAD, SAME_BEHIND
		default:
			aheadSlot, behindSlot = RIGHT_AHEAD, RIGHT_BEHIND
		}
		fillSlot(distances, speeds, signals, aheadSlot, ahead)
		fillSlot(distances, speeds, signals, behindSlot, behind)
	}
}

// capMissingLane 对无车道一侧做哨兵改写
// 说明：严格小于封顶值的实测值保留，达到封顶值的槽位改记-1
func (e *Extractor) capMissingLane(distances, speeds *[NUM_SLOTS]float64, slots ...int) {
	for _, i := range slots {
		if distances[i] >= e.s.MaxDistance {
			distances[i] = -1
		}
		if speeds[i] >= e.s.MaxSpeed {
			speeds[i] = -1
		}
	}
}

// fillSlot 把搜索结果写入槽位
// 说明：后方槽位的距离取偏移绝对值；无结果时保持哨兵不动
func fillSlot(distances, speeds, signals *[NUM_SLOTS]float64, slot int, n *neighbor) {
	if n == nil {
		return
	}
	distances[slot] = mathutil.Abs(n.dx)
	speeds[slot] = n.k.Speed
	signals[slot] = float64(n.k.Signal)
}
