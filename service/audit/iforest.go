/*
 * @module service/audit/iforest
 * @description 隔离森林实现，随机划分树集成的多变量无监督异常评分
 * @architecture 审计引擎层 - 固定种子的确定性随机算法
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 子采样 -> 随机划分建树 -> 路径长度评分 -> 污染率阈值选取
 * @rules 随机源由固定种子初始化，相同输入必须产生相同异常集合
 * @dependencies math, math/rand, sort, errors
 * @refs service/audit/outlier_detector.go
 */

package audit

import (
	"errors"
	"math"
	"math/rand"
	"sort"
)

const (
	iforestTrees      = 100
	iforestSampleSize = 256
)

// isolationForest 隔离森林
type isolationForest struct {
	rng *rand.Rand
}

// newIsolationForest 以固定种子创建隔离森林
func newIsolationForest(seed int64) *isolationForest {
	return &isolationForest{rng: rand.New(rand.NewSource(seed))}
}

// iTreeNode 隔离树节点
type iTreeNode struct {
	left, right *iTreeNode
	splitAttr   int
	splitValue  float64
	size        int // 外部节点承载的样本数
}

// FitPredict 训练并返回异常行的下标（相对于输入矩阵）
// contamination 为预期异常占比
func (f *isolationForest) FitPredict(frame [][]float64, contamination float64) ([]int, error) {
	n := len(frame)
	if n == 0 {
		return nil, errors.New("空数据")
	}
	dims := len(frame[0])
	if dims == 0 {
		return nil, errors.New("无特征列")
	}

	sampleSize := iforestSampleSize
	if sampleSize > n {
		sampleSize = n
	}
	heightLimit := int(math.Ceil(math.Log2(float64(sampleSize))))
	if heightLimit < 1 {
		heightLimit = 1
	}

	// 建树
	trees := make([]*iTreeNode, iforestTrees)
	for t := 0; t < iforestTrees; t++ {
		sample := f.subsample(frame, sampleSize)
		trees[t] = f.buildTree(sample, 0, heightLimit)
	}

	// 评分：s(x) = 2^(-E[h(x)]/c(ψ))
	c := averagePathLength(float64(sampleSize))
	scores := make([]float64, n)
	for i, row := range frame {
		sum := 0.0
		for _, tree := range trees {
			sum += pathLength(tree, row, 0)
		}
		avg := sum / float64(iforestTrees)
		scores[i] = math.Pow(2, -avg/c)
	}

	return selectAnomalies(scores, contamination), nil
}

// subsample 无放回子采样
func (f *isolationForest) subsample(frame [][]float64, size int) [][]float64 {
	n := len(frame)
	if size >= n {
		return frame
	}
	perm := f.rng.Perm(n)
	sample := make([][]float64, size)
	for i := 0; i < size; i++ {
		sample[i] = frame[perm[i]]
	}
	return sample
}

// buildTree 递归构建隔离树
func (f *isolationForest) buildTree(sample [][]float64, depth, heightLimit int) *iTreeNode {
	if depth >= heightLimit || len(sample) <= 1 {
		return &iTreeNode{size: len(sample)}
	}

	dims := len(sample[0])
	attr := f.rng.Intn(dims)

	minV, maxV := sample[0][attr], sample[0][attr]
	for _, row := range sample {
		if row[attr] < minV {
			minV = row[attr]
		}
		if row[attr] > maxV {
			maxV = row[attr]
		}
	}
	if minV == maxV {
		return &iTreeNode{size: len(sample)}
	}

	split := minV + f.rng.Float64()*(maxV-minV)

	var left, right [][]float64
	for _, row := range sample {
		if row[attr] < split {
			left = append(left, row)
		} else {
			right = append(right, row)
		}
	}

	return &iTreeNode{
		splitAttr:  attr,
		splitValue: split,
		left:       f.buildTree(left, depth+1, heightLimit),
		right:      f.buildTree(right, depth+1, heightLimit),
	}
}

// pathLength 样本在树中的路径长度，外部节点按c(size)修正
func pathLength(node *iTreeNode, row []float64, depth int) float64 {
	if node.left == nil && node.right == nil {
		return float64(depth) + averagePathLength(float64(node.size))
	}
	if row[node.splitAttr] < node.splitValue {
		return pathLength(node.left, row, depth+1)
	}
	return pathLength(node.right, row, depth+1)
}

// averagePathLength BST不成功查找的平均路径长度 c(n)
func averagePathLength(n float64) float64 {
	if n <= 1 {
		return 0
	}
	return 2*(math.Log(n-1)+0.5772156649) - 2*(n-1)/n
}

// selectAnomalies 取评分最高的约contamination比例的行，评分相同按行号稳定排序
func selectAnomalies(scores []float64, contamination float64) []int {
	n := len(scores)
	k := int(math.Floor(float64(n) * contamination))
	if k <= 0 {
		return nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if scores[order[a]] != scores[order[b]] {
			return scores[order[a]] > scores[order[b]]
		}
		return order[a] < order[b]
	})

	anomalies := make([]int, k)
	copy(anomalies, order[:k])
	return anomalies
}
