package config

// InputPath 指定输入数据来源的配置（MongoDB、文件系统）
// 说明：支持MongoDB和文件系统两种数据源，文件优先级高于MongoDB
type InputPath struct {
	DB    string `yaml:"db"`              // 数据库名
	Col   string `yaml:"col"`             // 集合名
	Cache string `yaml:"cache,omitempty"` // 缓存文件名，为空则采用默认路径{db}.{col}.yml
	File  string `yaml:"file,omitempty"`  // 文件路径（优先级高于MongoDB）
}

// GetCachePath 获取缓存文件路径
// 说明：未指定时使用默认命名规则{数据库名}.{集合名}.yml
func (p InputPath) GetCachePath() string {
	if p.Cache != "" {
		return p.Cache
	}
	return p.DB + "." + p.Col + ".yml"
}

// Input 指定场景输入数据的配置项
type Input struct {
	URI      string    `yaml:"uri,omitempty"` // MongoDB连接字符串
	Scenario InputPath `yaml:"scenario"`      // 场景数据（车辆初始布置）
}

// ControlStep 指定控制回路时间范围和间隔的配置项
type ControlStep struct {
	Start    int32   `yaml:"start"`    // 开始步数
	Total    int32   `yaml:"total"`    // 总步数
	Interval float64 `yaml:"interval"` // 每步的时间间隔，即决策的控制间隔dt
}

// Control 控制回路配置
type Control struct {
	Step        ControlStep `yaml:"step"`
	SensorRange float64     `yaml:"sensor_range"`   // 感知半径（米）
	Seed        uint64      `yaml:"seed,omitempty"` // 随机种子（背景车生成）
}

// Sentinel 特征向量哨兵常量
// 说明：把特征模式的约定显式化为配置，而不是散落在代码中的魔法数
type Sentinel struct {
	MaxDistance     float64    `yaml:"max_distance"`           // 无邻车时的距离哨兵
	MaxSpeed        float64    `yaml:"max_speed"`              // 无邻车时的速度哨兵
	OpenEndPosition [2]float64 `yaml:"open_end_position,flow"` // 插入位开口端的位置哨兵
	OpenEndSpeed    float64    `yaml:"open_end_speed"`         // 插入位开口端的速度哨兵
}

// SegmentRule 原始路段ID到规范化车道命名的映射规则
// 说明：车道编号 = 原始编号 + Offset；Absolute为true时Offset即绝对编号
type SegmentRule struct {
	Segment  int32  `yaml:"segment"`            // 世界后端的原始路段ID
	Edge     string `yaml:"edge"`               // 规范化edge名
	Offset   int32  `yaml:"offset"`             // 车道编号偏移量
	Absolute bool   `yaml:"absolute,omitempty"` // Offset为绝对车道编号
}

// LaneLayout 规范化车道的邻接布局
// 说明：NoLeft/NoRight用于区分"该侧无车"与"该侧根本没有车道"
type LaneLayout struct {
	Lane          string `yaml:"lane"`                     // 规范化车道标识
	MergeApproach bool   `yaml:"merge_approach,omitempty"` // 是否为单车道汇入段
	NoLeft        bool   `yaml:"no_left,omitempty"`        // 左侧无车道
	NoRight       bool   `yaml:"no_right,omitempty"`       // 右侧无车道
}

// Network 路网相关配置：车道中心、容差与拓扑映射表
type Network struct {
	LaneCenters       []float64     `yaml:"lane_centers,flow"`        // 主线车道中心横坐标（模块坐标系，自右向左）
	LaneBand          float64       `yaml:"lane_band"`                // 车道中心带宽容差
	LaneMatch         float64       `yaml:"lane_match"`               // 邻车横向匹配容差
	MergeLane         string        `yaml:"merge_lane"`               // 汇入车道标识
	PlatoonLaneCenter float64       `yaml:"platoon_lane_center"`      // 车队所在车道中心横坐标
	Segments          []SegmentRule `yaml:"segments,omitempty"`       // 车道标识映射表
	IndexSegments     []SegmentRule `yaml:"index_segments,omitempty"` // 车道序号映射表
	Lanes             []LaneLayout  `yaml:"lanes,omitempty"`          // 车道布局表
}

// VehicleSpawn 场景中单辆车的初始布置
type VehicleSpawn struct {
	ID       int32      `yaml:"id"`
	Position [3]float64 `yaml:"position,flow"` // 世界后端坐标系下的初始位置
	Speed    float64    `yaml:"speed"`         // 初始速度（米/秒）
	Segment  int32      `yaml:"segment"`       // 原始路段ID
	RawLane  int32      `yaml:"raw_lane"`      // 原始车道编号
	Role     string     `yaml:"role,omitempty"` // platoon/merger/background
}

// Scenario 场景数据：车辆初始布置与背景交通
type Scenario struct {
	Vehicles   []VehicleSpawn `yaml:"vehicles"`
	Background int            `yaml:"background,omitempty"` // 随机生成的背景车数量
}

// Config YAML配置文件的根结构
type Config struct {
	Input   Input    `yaml:"input"`              // 输入
	Control Control  `yaml:"control"`            // 控制回路
	Sentinel Sentinel `yaml:"sentinel,omitempty"` // 哨兵常量，缺省使用发表值
	Network Network  `yaml:"network,omitempty"`  // 路网，缺省使用内置汇入路网
}
