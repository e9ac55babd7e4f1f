// 模糊推理系统（FIS）能力契约。模型的规则库与去模糊化过程在模块边界之外，
// 这里只约定输入输出：数值向量进、数值向量出。测试与示例使用确定性桩实现。
package fis

import "fmt"

// 各模型类型的输入长度契约
const (
	SlotScoreInputLen = 18 // 插入位打分模型：特征子集+前后车位置速度
	SpeedInputLen     = 21 // 速度模型：完整特征向量
)

// Evaluator 黑盒模糊推理评估器
// 说明：实现必须是无内部可变状态的纯函数，可在多个决策调用间并发共享；
// 输出向量至少包含1个元素，首个元素为模型结果
type Evaluator interface {
	Eval(input []float64) ([]float64, error)
}

// EvalFunc 评估器的函数适配器
type EvalFunc func(input []float64) ([]float64, error)

// Eval 实现Evaluator接口
func (f EvalFunc) Eval(input []float64) ([]float64, error) {
	return f(input)
}

// Models 决策引擎注入的三个模糊推理模型
type Models struct {
	SlotScore   Evaluator // 插入位打分模型
	LeaderSpeed Evaluator // 车队头车速度模型
	MergerSpeed Evaluator // 汇入车速度模型
}

// FirstOutput 求值并取首个输出
// 功能：调用评估器并校验输出契约
// 参数：e-评估器，input-输入向量
// 返回：输出向量的首个元素
// 说明：求值失败或输出为空均视为模型配置缺陷，原样上抛、不重试
func FirstOutput(e Evaluator, input []float64) (float64, error) {
	out, err := e.Eval(input)
	if err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, fmt.Errorf("fis: evaluator returned empty output for %d inputs", len(input))
	}
	return out[0], nil
}
