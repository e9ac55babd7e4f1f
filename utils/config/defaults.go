package config

const (
	defaultSensorRange = 150  // 发表实验的通信/感知半径（米）
	defaultInterval    = 0.05 // 发表实验的控制间隔（秒）
)

// DefaultSentinel 哨兵常量的发表值
// 说明：无邻车时距离记150、速度记50，插入位开口端位置记(500,500)、速度记50
func DefaultSentinel() Sentinel {
	return Sentinel{
		MaxDistance:     150,
		MaxSpeed:        50,
		OpenEndPosition: [2]float64{500, 500},
		OpenEndSpeed:    50,
	}
}

// DefaultNetwork 内置的三车道汇入路网
// 功能：返回发表场景所用路网的全部配置数据
// 说明：gneE0-上游、gneE1-汇入车道、gneE4-汇入控制区、gneE5-下游，
// :gneJ1/:gneJ6为两端路口内的连接段；车道中心为模块坐标系（横轴已翻转）
func DefaultNetwork() Network {
	return Network{
		LaneCenters:       []float64{-7.5, -4.5, -1.5},
		LaneBand:          1.5,
		LaneMatch:         0.1,
		MergeLane:         "gneE1_0",
		PlatoonLaneCenter: -4.5,
		Segments: []SegmentRule{
			// 上游主线（含路线起点的连接段）
			{Segment: 10, Edge: "gneE0", Offset: 3},
			{Segment: 5, Edge: "gneE0", Offset: 3},
			{Segment: 3, Edge: "gneE0", Offset: 3},
			// 汇入车道（含路线起点的连接段）
			{Segment: 2, Edge: "gneE1", Offset: 2},
			{Segment: 12, Edge: "gneE1", Offset: 2},
			{Segment: 11, Edge: "gneE1", Offset: 2},
			// 汇入控制区
			{Segment: 1, Edge: "gneE4", Offset: 4},
			// 下游主线（含路线终点的连接段）
			{Segment: 8, Edge: "gneE5", Offset: 3},
			{Segment: 0, Edge: "gneE5", Offset: 3},
			{Segment: 9, Edge: "gneE5", Offset: 3},
			// 下游路口：消失车道与主线双车道
			{Segment: 25, Edge: ":gneJ6_0", Offset: 1},
			{Segment: 29, Edge: ":gneJ6_0", Offset: 3},
			// 上游路口：汇入单车道与主线双车道
			{Segment: 14, Edge: ":gneJ1_0", Offset: 0, Absolute: true},
			{Segment: 19, Edge: ":gneJ1_1", Offset: 2},
		},
		IndexSegments: []SegmentRule{
			// 上游主线
			{Segment: 7, Offset: 3},
			{Segment: 16, Offset: 3},
			{Segment: 2, Offset: 3},
			// 汇入车道
			{Segment: 1, Offset: 2},
			{Segment: 39, Offset: 2},
			{Segment: 8, Offset: 2},
			// 汇入控制区
			{Segment: 0, Offset: 4},
			// 下游主线
			{Segment: 5, Offset: 3},
			{Segment: 46, Offset: 3},
			{Segment: 6, Offset: 3},
			// 下游路口
			{Segment: 30, Offset: 1},
			{Segment: 34, Offset: 3},
			// 上游路口
			{Segment: 21, Offset: 0, Absolute: true},
			{Segment: 3, Offset: 0, Absolute: true},
			{Segment: 25, Offset: 2},
			{Segment: 4, Offset: 2},
		},
		Lanes: []LaneLayout{
			// 汇入段：单车道，两侧均无车道
			{Lane: "gneE1_0", MergeApproach: true, NoLeft: true, NoRight: true},
			{Lane: ":gneJ1_0_0", MergeApproach: true, NoLeft: true, NoRight: true},
			// 各edge最右侧车道：右侧无车道
			{Lane: "gneE0_0", NoRight: true},
			{Lane: "gneE4_0", NoRight: true},
			{Lane: "gneE5_0", NoRight: true},
			{Lane: ":gneJ6_0_1", NoRight: true},
			// 各edge最左侧车道：左侧无车道
			{Lane: "gneE0_1", NoLeft: true},
			{Lane: "gneE4_2", NoLeft: true},
			{Lane: "gneE5_1", NoLeft: true},
			{Lane: ":gneJ1_1_1", NoLeft: true},
			{Lane: ":gneJ6_0_2", NoLeft: true},
		},
	}
}
