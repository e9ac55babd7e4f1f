// 场景运行器：把配置、时钟、内存世界与决策引擎装配为一个闭环控制回路，
// 每个控制步重新评估插入位并下发头车/汇入车的速度指令。
package task

import (
	"flag"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/tsinghua-fib-lab/platoon-merge-go/clock"
	"github.com/tsinghua-fib-lab/platoon-merge-go/engine"
	"github.com/tsinghua-fib-lab/platoon-merge-go/fis"
	"github.com/tsinghua-fib-lab/platoon-merge-go/platoon"
	"github.com/tsinghua-fib-lab/platoon-merge-go/topology"
	"github.com/tsinghua-fib-lab/platoon-merge-go/utils/config"
	"github.com/tsinghua-fib-lab/platoon-merge-go/utils/randengine"
	"github.com/tsinghua-fib-lab/platoon-merge-go/world"
)

// 场景中车辆的角色
const (
	RolePlatoon    = "platoon"    // 车队成员
	RoleMerger     = "merger"     // 汇入车
	RoleBackground = "background" // 背景交通
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

// Scenario 汇入场景
// 功能：装配并驱动一次完整的汇入仿真
type Scenario struct {
	rc      *config.RuntimeConfig
	clk     *clock.Clock
	manager *world.Manager
	engine  *engine.Engine

	merger  *world.Vehicle
	platoon *platoon.Platoon

	lastDecision engine.Decision
}

// New 根据配置与场景数据创建场景
// 功能：布置场景车辆、生成背景交通、装配决策引擎
// 参数：rc-运行时配置，sc-场景数据，models-注入的三个模糊推理模型
// 返回：就绪的场景实例
// 算法说明：
// 1. 按场景数据逐车布置，按角色归入车队或汇入车
// 2. 背景交通按固定种子随机布置在主线车道上，保证可重复
// 3. 统一Prepare后世界进入在世状态
func New(rc *config.RuntimeConfig, sc *config.Scenario, models fis.Models) *Scenario {
	clk := clock.New(rc.C.Step)
	manager := world.NewManager()
	resolver := topology.New(rc.Net)

	p := platoon.New()
	var merger *world.Vehicle
	for _, spawn := range sc.Vehicles {
		v := world.NewVehicle(
			spawn.ID,
			geometry.Point{X: spawn.Position[0], Y: spawn.Position[1], Z: spawn.Position[2]},
			spawn.Speed, spawn.Segment, spawn.RawLane,
		)
		manager.Add(v)
		switch spawn.Role {
		case RoleMerger:
			if merger != nil {
				log.Panicf("more than one merger in scenario")
			}
			merger = v
		case RolePlatoon:
			p.Add(v)
		}
	}
	if merger == nil {
		log.Panic("scenario must contain a merger vehicle")
	}
	spawnBackground(manager, randengine.New(rc.C.Seed), rc, sc.Background)
	manager.Prepare()

	log.Infof("scenario ready: %d vehicles, %d platoon members",
		len(manager.Vehicles()), p.Len())
	return &Scenario{
		rc:      rc,
		clk:     clk,
		manager: manager,
		engine:  engine.New(manager, resolver, rc, models, clk),
		merger:  merger,
		platoon: p,
	}
}

// spawnBackground 生成背景交通
// 功能：在汇入控制区主线上随机布置n辆背景车
// 说明：车道等概率抽取，纵向位置与速度均匀抽取；固定种子下完全确定
func spawnBackground(manager *world.Manager, generator *randengine.Engine, rc *config.RuntimeConfig, n int) {
	centers := rc.Net.LaneCenters
	weights := make([]float64, len(centers))
	for i := range weights {
		weights[i] = 1
	}
	for i := 0; i < n; i++ {
		laneIdx := generator.DiscreteDistribution(weights)
		v := world.NewVehicle(
			int32(backgroundIDBase+i),
			// 模块坐标转回世界后端坐标（横轴翻转）
			geometry.Point{X: generator.Float64() * 300, Y: -centers[laneIdx]},
			8+generator.Float64()*8,
			backgroundSegment,
			laneIdx+backgroundLaneOffset,
		)
		manager.Add(v)
	}
}

const (
	backgroundIDBase     = 1000 // 背景车ID起始值
	backgroundSegment    = 1    // 汇入控制区的原始路段ID
	backgroundLaneOffset = -4   // 原始车道编号与车道序号的差值（路段1）
)

// Run 运行场景直至控制区间结束
// 返回：评估器失败等致命错误，正常结束返回nil
func (s *Scenario) Run() error {
	for !s.clk.Done() {
		s.prepare()
		if err := s.update(); err != nil {
			return err
		}
	}
	return nil
}

// prepare 准备阶段，每步执行一次
// 功能：推进时钟、输出心跳日志、应用世界的增量操作
func (s *Scenario) prepare() {
	s.clk.InternalStep++
	s.clk.T = float64(s.clk.InternalStep) * s.clk.DT

	if s.clk.InternalStep%int32(*heartBeatInterval) == 0 {
		log.Infof("STEP: %d (%v)", s.clk.InternalStep, s.clk)
	}
	s.manager.Prepare()
}

// update 更新阶段，每步执行一次
// 功能：重新评估插入位，向头车与汇入车下发速度指令，推进世界一个控制步
// 说明：决策引擎无跨调用状态，每步的决策只依赖当步感知
func (s *Scenario) update() error {
	decision, err := s.engine.SelectMergeSlot(s.merger, s.platoon)
	if err != nil {
		return err
	}
	s.lastDecision = decision

	if leader := s.platoon.Leader(); leader != nil {
		desired, err := s.engine.DesiredLeaderSpeed(leader)
		if err != nil {
			return err
		}
		s.manager.Get(leader.ID()).SetTargetSpeed(desired)
	}
	desired, err := s.engine.DesiredMergerSpeed(s.merger)
	if err != nil {
		return err
	}
	s.merger.SetTargetSpeed(desired)

	s.manager.Update(s.clk.DT)
	return nil
}

// Decision 获取最近一次插入位决策
func (s *Scenario) Decision() engine.Decision {
	return s.lastDecision
}
