package fis

import (
	"fmt"
	"math"

	"github.com/samber/lo"
)

// 基线模型参数
const (
	neutralOutput = 0.95 / 3.55 // 加速度为0对应的模型输出
	speedGain     = 0.1         // 速度误差到模型输出的增益
	cruiseSpeed   = 15.0        // 无前车时的巡航速度（米/秒）
	safeGap       = 20.0        // 跟车安全距离（米）
	gapScale      = 100.0       // 间隙长度归一化尺度（米）

	sentinelDistance = 150.0 // 无前车时的距离哨兵值
)

// 插入位打分输入中使用的下标
const (
	inX     = 12 // 自车纵向位置
	inLeadX = 14 // 前界车纵向位置
	inRearX = 16 // 后界车纵向位置
)

// 速度模型输入中使用的下标
const (
	inAheadDist  = 2  // 同车道前车距离
	inAheadSpeed = 8  // 同车道前车速度
	inSelfSpeed  = 20 // 自车速度
)

// Baseline 创建基线模型组
// 功能：提供一组确定性的解析规则模型，行为合理但未经训练
// 说明：正式部署时由外部训练好的模糊推理模型替换，这里仅保证闭环可运行
func Baseline() Models {
	return Models{
		SlotScore:   EvalFunc(baselineSlotScore),
		LeaderSpeed: EvalFunc(baselineTrackAhead),
		MergerSpeed: EvalFunc(baselineTrackAhead),
	}
}

// baselineSlotScore 基线插入位打分
// 算法说明：
// 1. 间隙长度 = 前界车位置 - 后界车位置，非正间隙得0分
// 2. 间隙越长、自车纵向位置越接近间隙中点，得分越高
func baselineSlotScore(in []float64) ([]float64, error) {
	if len(in) != SlotScoreInputLen {
		return nil, fmt.Errorf("fis: slot score input length %d, want %d", len(in), SlotScoreInputLen)
	}
	x, leadX, rearX := in[inX], in[inLeadX], in[inRearX]
	gap := leadX - rearX
	if gap <= 0 {
		return []float64{0}, nil
	}
	mid := (leadX + rearX) / 2
	score := lo.Clamp(gap/gapScale, 0, 1) * (1 - lo.Clamp(math.Abs(x-mid)/gap, 0, 1))
	return []float64{score}, nil
}

// baselineTrackAhead 基线速度模型
// 算法说明：
// 1. 有前车时以前车速度为目标，距离小于安全距离时按比例压低目标
// 2. 无前车时以巡航速度为目标
// 3. 输出 = 中性输出 + 增益×速度误差，截断到[0,1]
func baselineTrackAhead(in []float64) ([]float64, error) {
	if len(in) != SpeedInputLen {
		return nil, fmt.Errorf("fis: speed input length %d, want %d", len(in), SpeedInputLen)
	}
	target := cruiseSpeed
	// 距离为负（无车道）或达到哨兵值（无前车）时按无前车处理
	if in[inAheadDist] >= 0 && in[inAheadDist] < sentinelDistance && in[inAheadSpeed] >= 0 {
		target = in[inAheadSpeed]
		if in[inAheadDist] < safeGap {
			target *= in[inAheadDist] / safeGap
		}
	}
	out := neutralOutput + speedGain*(target-in[inSelfSpeed])
	return []float64{lo.Clamp(out, 0, 1)}, nil
}
