package world

import (
	"fmt"
	"sync"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/platoon-merge-go/entity"
	"github.com/tsinghua-fib-lab/platoon-merge-go/utils/container"
)

// Manager 内存世界的车辆管理器
// 功能：实现entity.IWorld，维护在世车辆注册表
// 说明：添加/删除经缓冲区在Prepare阶段统一生效，更新阶段并行推进车辆
type Manager struct {
	vehicles *container.IncrementalArray[*Vehicle]
	data     map[int32]*Vehicle

	insertMutex sync.Mutex // 注册表写互斥锁
}

// NewManager 创建车辆管理器
func NewManager() *Manager {
	return &Manager{
		vehicles: container.NewIncrementalArray[*Vehicle](),
		data:     make(map[int32]*Vehicle),
	}
}

// Add 注册车辆（Prepare后进入在世列表）
func (m *Manager) Add(v *Vehicle) {
	m.insertMutex.Lock()
	defer m.insertMutex.Unlock()
	if _, ok := m.data[v.ID()]; ok {
		log.Panicf("vehicle ID %v already exists", v.ID())
	}
	m.data[v.ID()] = v
	m.vehicles.Add(v)
}

// Remove 注销车辆（Prepare后离开在世列表）
func (m *Manager) Remove(v *Vehicle) {
	m.insertMutex.Lock()
	defer m.insertMutex.Unlock()
	delete(m.data, v.ID())
	m.vehicles.Remove(v)
}

// Prepare 准备阶段，应用缓冲的注册/注销操作
func (m *Manager) Prepare() {
	m.vehicles.Prepare()
}

// Update 更新阶段，并行推进所有车辆一个控制步
func (m *Manager) Update(dt float64) {
	parallel.GoFor(m.vehicles.Data(), func(v *Vehicle) { v.update(dt) })
}

// Vehicles 获取所有在世车辆
func (m *Manager) Vehicles() []entity.IVehicle {
	return lo.Map(m.vehicles.Data(), func(v *Vehicle, _ int) entity.IVehicle {
		return v
	})
}

// Get 根据ID获取车辆实例，不存在则panic
func (m *Manager) Get(id int32) *Vehicle {
	if v, ok := m.data[id]; !ok {
		log.Panicf("no id %d in vehicle data", id)
		return nil
	} else {
		return v
	}
}

// GetOrError 根据ID获取车辆实例（带错误处理）
func (m *Manager) GetOrError(id int32) (entity.IVehicle, error) {
	if v, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in vehicle data", id)
	} else {
		return v, nil
	}
}
