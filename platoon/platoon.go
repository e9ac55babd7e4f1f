package platoon

import (
	"math"
	"sort"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/platoon-merge-go/entity"
	"github.com/tsinghua-fib-lab/platoon-merge-go/topology"
)

// Platoon 车队
// 功能：维护从队首到队尾有序的成员列表
// 说明：顺序以模块坐标系下的纵坐标为准（队首纵坐标最大）；
// 成员随仿真推进会移动，读取时重新修复顺序，纵坐标相同时ID小者在前
type Platoon struct {
	members []entity.IVehicle
}

// New 创建车队
// 参数：vehicles-初始成员，顺序任意
func New(vehicles ...entity.IVehicle) *Platoon {
	p := &Platoon{members: make([]entity.IVehicle, 0, len(vehicles))}
	for _, v := range vehicles {
		p.Add(v)
	}
	return p
}

// Add 加入成员
func (p *Platoon) Add(v entity.IVehicle) {
	p.members = append(p.members, v)
	p.sortMembers()
}

// Remove 按ID移除成员
func (p *Platoon) Remove(id int32) {
	p.members = lo.Filter(p.members, func(v entity.IVehicle, _ int) bool {
		return v.ID() != id
	})
}

// Len 获取成员数
func (p *Platoon) Len() int {
	return len(p.members)
}

// Members 获取从队首到队尾的成员列表
// 说明：返回内部切片本身，调用方只读使用
func (p *Platoon) Members() []entity.IVehicle {
	p.sortMembers()
	return p.members
}

// Leader 获取队首车辆，空车队返回nil
func (p *Platoon) Leader() entity.IVehicle {
	if len(p.members) == 0 {
		return nil
	}
	p.sortMembers()
	return p.members[0]
}

// Mainline 过滤出位于车队车道带内的成员
// 功能：横坐标与车队车道中心相差小于band的成员，保持从前到后的顺序
// 参数：center-车队车道中心横坐标（模块坐标系），band-带宽容差
// 说明：正在变道、尚未回到车队车道的成员不参与插入位枚举
func (p *Platoon) Mainline(center, band float64) []entity.IVehicle {
	return lo.Filter(p.Members(), func(v entity.IVehicle, _ int) bool {
		return math.Abs(topology.NormalizePosition(v.Position()).Y-center) < band
	})
}

// sortMembers 修复从前到后的顺序
func (p *Platoon) sortMembers() {
	sort.SliceStable(p.members, func(i, j int) bool {
		xi := topology.NormalizePosition(p.members[i].Position()).X
		xj := topology.NormalizePosition(p.members[j].Position()).X
		if xi != xj {
			return xi > xj
		}
		return p.members[i].ID() < p.members[j].ID()
	})
}
