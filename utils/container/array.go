package container

import (
	"sync"
)

// IIncrementalItem 支持增量更新的元素接口
// 说明：元素需要跟踪自己在数组中的位置，删除时用于O(1)交换移除
type IIncrementalItem interface {
	Index() int         // 获取元素的索引
	SetIndex(index int) // 设置元素的索引
}

// IncrementalItemBase 增量元素基类
// 说明：作为嵌入字段快速实现IIncrementalItem接口
type IncrementalItemBase struct {
	index int // 元素在数组中的索引
}

// Index 获取元素的索引
func (b *IncrementalItemBase) Index() int {
	return b.index
}

// SetIndex 设置元素的索引
func (b *IncrementalItemBase) SetIndex(index int) {
	b.index = index
}

// IncrementalArray 增量数组
// 功能：支持并发缓冲的批量添加与删除，在Prepare时统一生效
// 说明：写操作只进缓冲区，读操作只看主数组，避免更新阶段的读写竞争
type IncrementalArray[T IIncrementalItem] struct {
	data        []T        // 主数据数组
	add         []T        // 待添加的元素列表
	remove      []T        // 待删除的元素列表
	addMutex    sync.Mutex // 添加操作的互斥锁
	removeMutex sync.Mutex // 删除操作的互斥锁
}

// NewIncrementalArray 创建增量数组
func NewIncrementalArray[T IIncrementalItem]() *IncrementalArray[T] {
	return &IncrementalArray[T]{
		data:   make([]T, 0),
		add:    make([]T, 0),
		remove: make([]T, 0),
	}
}

// Len 获取当前数组长度
func (a *IncrementalArray[T]) Len() int {
	return len(a.data)
}

// Data 获取主数组
// 说明：返回的是已应用所有增量操作的数据，调用方只读使用
func (a *IncrementalArray[T]) Data() []T {
	return a.data
}

// Add 增加元素（等到Prepare时才会真正增加）
func (a *IncrementalArray[T]) Add(value T) {
	a.addMutex.Lock()
	defer a.addMutex.Unlock()
	a.add = append(a.add, value)
}

// Remove 删除元素（等到Prepare时才会真正删除）
func (a *IncrementalArray[T]) Remove(value T) {
	a.removeMutex.Lock()
	defer a.removeMutex.Unlock()
	a.remove = append(a.remove, value)
}

// Prepare 应用所有缓冲的增量操作
// 算法说明：
// 1. 删除：用末尾元素交换覆盖被删位置并修正其索引
// 2. 添加：追加到末尾并记录索引
// 说明：在每个控制步的准备阶段由单线程调用
func (a *IncrementalArray[T]) Prepare() {
	for _, value := range a.remove {
		i := value.Index()
		last := len(a.data) - 1
		a.data[i] = a.data[last]
		a.data[i].SetIndex(i)
		a.data = a.data[:last]
	}
	a.remove = a.remove[:0]
	for _, value := range a.add {
		value.SetIndex(len(a.data))
		a.data = append(a.data, value)
	}
	a.add = a.add[:0]
}
