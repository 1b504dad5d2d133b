package emotion

// Label 表示对外暴露的标准情绪标签。
type Label string

const (
	Happiness   Label = "happiness"
	Sadness     Label = "sadness"
	Anger       Label = "anger"
	Anxiety     Label = "anxiety"
	Frustration Label = "frustration"
	Depression  Label = "depression"
)

// Labels 按固定顺序列出全部标准情绪，排序与补零都依赖这个顺序。
var Labels = []Label{Happiness, Sadness, Anger, Anxiety, Frustration, Depression}

// NativeLabel 是底层分类模型自带的情绪标签。
type NativeLabel string

const (
	NativeJoy      NativeLabel = "joy"
	NativeSadness  NativeLabel = "sadness"
	NativeAnger    NativeLabel = "anger"
	NativeFear     NativeLabel = "fear"
	NativeSurprise NativeLabel = "surprise"
	NativeDisgust  NativeLabel = "disgust"
)

// NativeLabels 的顺序必须与模型输出向量的顺序一致，属于外部契约，不能改。
var NativeLabels = []NativeLabel{
	NativeJoy,
	NativeSadness,
	NativeAnger,
	NativeFear,
	NativeSurprise,
	NativeDisgust,
}
