// 车队汇入决策引擎：基于模糊推理打分选择最优插入位，
// 并为车队头车与汇入车计算期望速度。
package engine

import (
	"fmt"
	"math"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/tsinghua-fib-lab/platoon-merge-go/clock"
	"github.com/tsinghua-fib-lab/platoon-merge-go/entity"
	"github.com/tsinghua-fib-lab/platoon-merge-go/fis"
	"github.com/tsinghua-fib-lab/platoon-merge-go/platoon"
	"github.com/tsinghua-fib-lab/platoon-merge-go/sensor"
	"github.com/tsinghua-fib-lab/platoon-merge-go/topology"
	"github.com/tsinghua-fib-lab/platoon-merge-go/utils/config"
)

// 模糊输出到加速度的仿射映射：输出0.0→-0.95，输出1.0→2.60（米/秒²）
const (
	accelGain = 3.55
	accelBias = -0.95
)

// Decision 插入位决策结果
type Decision struct {
	SlotIndex int             // 插入位序号，0为队首之前，N为队尾之后
	Leader    entity.IVehicle // 插入后的前车，队首插入时为nil
	Rear      entity.IVehicle // 插入后的后车，队尾插入时为nil
}

func (d Decision) String() string {
	leadID, rearID := int32(-1), int32(-1)
	if d.Leader != nil {
		leadID = d.Leader.ID()
	}
	if d.Rear != nil {
		rearID = d.Rear.ID()
	}
	return fmt.Sprintf("Decision{slot=%d, leader=%d, rear=%d}", d.SlotIndex, leadID, rearID)
}

// Engine 汇入决策引擎
// 功能：编排感知、特征提取与模糊推理，给出插入位与期望速度
// 说明：自身无跨调用状态，每次决策的快照与特征向量均为调用私有数据；
// 三个模糊模型为只读共享依赖
type Engine struct {
	sensor    *sensor.Sensor
	extractor *Extractor
	models    fis.Models
	dt        float64 // 控制间隔（秒）

	platoonLaneCenter float64
	laneBand          float64
	openEndX          float64
	openEndSpeed      float64
}

// New 创建汇入决策引擎
// 参数：world-世界查询接口，resolver-拓扑解析器，rc-运行时配置，
// models-三个注入的模糊推理模型，clk-控制时钟（提供控制间隔dt）
func New(
	world entity.IWorld, resolver *topology.Resolver,
	rc *config.RuntimeConfig, models fis.Models, clk *clock.Clock,
) *Engine {
	return &Engine{
		sensor:            sensor.New(world, resolver, rc.C.SensorRange),
		extractor:         NewExtractor(resolver, rc),
		models:            models,
		dt:                clk.DT,
		platoonLaneCenter: rc.Net.PlatoonLaneCenter,
		laneBand:          rc.Net.LaneBand,
		openEndX:          rc.S.OpenEndPosition[0],
		openEndSpeed:      rc.S.OpenEndSpeed,
	}
}

// SelectMergeSlot 选择最优插入位
// 功能：对车队的N+1个候选插入位逐一打分并取最优
// 参数：merger-汇入车辆，p-候选车队
// 返回：插入位决策（序号与前后车）
// 算法说明：
// 1. 车队成员过滤到车队车道带内，保持从前到后的顺序
// 2. 汇入车的特征向量只构建一次，取其子集（左/本车道的距离速度信号、
//    纵坐标与自车速度，忽略横坐标）作为每个插入位的公共输入
// 3. 对插入位j（0..N）：拼接候选前车与后车的纵坐标与速度，
//    队首/队尾开口端使用哨兵位置与速度；交给打分模型求值
// 4. 取最高分的插入位，同分取序号最小者；空车队退化为单插入位，
//    前后车均为nil
// 说明：打分模型的单调性对本引擎不可见，只约定分数越高越好
func (e *Engine) SelectMergeSlot(merger entity.IVehicle, p *platoon.Platoon) (Decision, error) {
	members := p.Mainline(e.platoonLaneCenter, e.laneBand)

	feats := e.extractor.Extract(e.sensor.Observe(merger), e.sensor.Sense(merger))
	base := make([]float64, 0, fis.SlotScoreInputLen)
	base = append(base, feats[LEFT_AHEAD:SAME_BEHIND+1]...)
	base = append(base, feats[offSpeed+LEFT_AHEAD:offSpeed+SAME_BEHIND+1]...)
	base = append(base, feats[offSignal+LEFT_AHEAD:offSignal+SAME_BEHIND+1]...)
	base = append(base, feats[offX], feats[offSelfSpeed]) // 忽略自车横坐标

	best, bestScore := 0, -mathutil.INF
	for j := 0; j <= len(members); j++ {
		leadX, leadV := e.openEndX, e.openEndSpeed
		rearX, rearV := e.openEndX, e.openEndSpeed
		if j > 0 {
			lead := members[j-1]
			leadX = topology.NormalizePosition(lead.Position()).X
			leadV = speedOf(lead)
		}
		if j < len(members) {
			rear := members[j]
			rearX = topology.NormalizePosition(rear.Position()).X
			rearV = speedOf(rear)
		}
		in := make([]float64, 0, fis.SlotScoreInputLen)
		in = append(in, base...)
		in = append(in, leadX, leadV, rearX, rearV)

		score, err := fis.FirstOutput(e.models.SlotScore, in)
		if err != nil {
			return Decision{}, fmt.Errorf("engine: slot scorer failed at slot %d: %w", j, err)
		}
		// 同分取序号最小者
		if score > bestScore {
			best, bestScore = j, score
		}
	}

	d := Decision{SlotIndex: best}
	if best > 0 {
		d.Leader = members[best-1]
	}
	if best < len(members) {
		d.Rear = members[best]
	}
	log.Debugf("merger %d: %v over %d members", merger.ID(), d, len(members))
	return d, nil
}

// DesiredLeaderSpeed 计算车队头车的期望速度
func (e *Engine) DesiredLeaderSpeed(v entity.IVehicle) (float64, error) {
	return e.desiredSpeed(v, e.models.LeaderSpeed)
}

// DesiredMergerSpeed 计算汇入车的期望速度
func (e *Engine) DesiredMergerSpeed(v entity.IVehicle) (float64, error) {
	return e.desiredSpeed(v, e.models.MergerSpeed)
}

// desiredSpeed 期望速度计算
// 功能：特征向量经速度模型得到归一化输出，映射为加速度后显式欧拉积分一步
// 参数：v-被控车辆，model-速度模型（头车或汇入车）
// 返回：期望速度（米/秒）
// 算法说明：
// 1. accel = accelGain*输出 + accelBias
// 2. 期望速度 = 当前速度 + accel*dt
// 说明：单步速度更新而非轨迹规划，每个控制周期重新计算
func (e *Engine) desiredSpeed(v entity.IVehicle, model fis.Evaluator) (float64, error) {
	own := e.sensor.Observe(v)
	feats := e.extractor.Extract(own, e.sensor.Sense(v))
	out, err := fis.FirstOutput(model, feats[:])
	if err != nil {
		return 0, fmt.Errorf("engine: speed model failed for vehicle %d: %w", v.ID(), err)
	}
	accel := accelGain*out + accelBias
	return own.Speed + accel*e.dt, nil
}

// speedOf 车辆三维速度模长
func speedOf(v entity.IVehicle) float64 {
	vel := v.Velocity()
	return math.Sqrt(vel.X*vel.X + vel.Y*vel.Y + vel.Z*vel.Z)
}
