package config

// RuntimeConfig 运行时配置
// 功能：存储决策模块运行时的配置信息，缺省项已填充默认值
type RuntimeConfig struct {
	All Config   // 全部配置
	C   Control  // 控制回路配置
	S   Sentinel // 哨兵常量
	Net Network  // 路网配置
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：创建运行时配置对象，进行配置验证与默认值填充
// 参数：config-原始配置对象
// 返回：初始化的运行时配置指针
// 算法说明：
// 1. 感知半径与控制间隔缺省时取发表实验所用值
// 2. 哨兵常量缺省时取DefaultSentinel
// 3. 路网未给出车道中心时整体回落到内置汇入路网DefaultNetwork
func NewRuntimeConfig(config Config) *RuntimeConfig {
	rc := &RuntimeConfig{
		All: config,
		C:   config.Control,
		S:   config.Sentinel,
		Net: config.Network,
	}
	if rc.C.SensorRange <= 0 {
		rc.C.SensorRange = defaultSensorRange
	}
	if rc.C.Step.Interval <= 0 {
		rc.C.Step.Interval = defaultInterval
	}
	if rc.C.Step.Total <= 0 {
		rc.C.Step.Total = 1
	}
	if rc.S.MaxDistance == 0 {
		rc.S = DefaultSentinel()
	}
	if len(rc.Net.LaneCenters) == 0 {
		rc.Net = DefaultNetwork()
	}
	return rc
}
