package indicators

import (
	"math"
	"testing"
)

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.6f, want %.6f (tol=%.6f)", label, got, want, tol)
	}
}

func TestSMA(t *testing.T) {
	// 手算SMA(3)：{1,2,3,4,5}
	// i=2: (1+2+3)/3=2  i=3: (2+3+4)/3=3  i=4: (3+4+5)/3=4
	out := SMA([]float64{1, 2, 3, 4, 5}, 3)
	expected := []float64{0, 0, 2, 3, 4}
	for i, want := range expected {
		assertClose(t, "SMA(3)", out[i], want, 1e-9)
	}
}

func TestSMA_InsufficientInput(t *testing.T) {
	out := SMA([]float64{1, 2}, 3)
	if len(out) != 2 || out[0] != 0 || out[1] != 0 {
		t.Errorf("数据不足时应返回全零序列: %v", out)
	}
}

func TestEMA(t *testing.T) {
	// EMA(3)：乘数 = 2/(3+1) = 0.5，以前3个值的均值作种子
	// 种子 = (100+102+104)/3 = 102
	// i=3: (103-102)*0.5+102 = 102.5
	// i=4: (105-102.5)*0.5+102.5 = 103.75
	out := EMA([]float64{100, 102, 104, 103, 105}, 3)
	expected := []float64{0, 0, 102, 102.5, 103.75}
	for i, want := range expected {
		assertClose(t, "EMA(3)", out[i], want, 1e-9)
	}
}

func TestRSI_Wilder(t *testing.T) {
	// 经典Wilder手算序列，period=5
	// 涨跌: +0.34 -0.25 -0.48 +0.72 +0.50 → avgGain=0.312 avgLoss=0.146 → RSI=68.11
	// +0.27 → avgGain=0.3036 avgLoss=0.1168 → RSI=72.22
	// +0.32 → avgGain=0.30688 avgLoss=0.09344 → RSI=76.66
	// +0.42 → avgGain=0.329504 avgLoss=0.074752 → RSI=81.51
	closes := []float64{44.00, 44.34, 44.09, 43.61, 44.33, 44.83, 45.10, 45.42, 45.84}
	out := RSI(closes, 5)

	assertClose(t, "RSI 首值", out[5], 68.11, 0.05)
	assertClose(t, "RSI 第2值", out[6], 72.22, 0.05)
	assertClose(t, "RSI 第3值", out[7], 76.66, 0.05)
	assertClose(t, "RSI 第4值", out[8], 81.51, 0.05)

	for i := 0; i < 5; i++ {
		if out[i] != 0 {
			t.Errorf("暖机期内RSI应为0: out[%d]=%v", i, out[i])
		}
	}
}

func TestRSI_AllGainsIs100(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	out := RSI(closes, 5)
	assertClose(t, "单边上涨RSI", out[len(out)-1], 100, 1e-9)
}

func TestRSI_FlatIs50(t *testing.T) {
	closes := []float64{10, 10, 10, 10, 10, 10, 10, 10}
	out := RSI(closes, 5)
	assertClose(t, "横盘RSI", out[len(out)-1], 50, 1e-9)
}

func TestMACD_ConstantTrend(t *testing.T) {
	// 等差上涨序列：快慢EMA差值恒定，信号线追平后柱体为0
	// closes = 1..10, fast=3, slow=5, signal=3
	// EMA3[i]=i, EMA5[i]=i-1 (i>=5) → macd恒为1
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	macd, signal, histogram := MACD(closes, 3, 5, 3)

	for i := 4; i < len(closes); i++ {
		assertClose(t, "MACD线", macd[i], 1, 1e-9)
	}
	// 信号线在MACD线成型后signal周期才有值
	assertClose(t, "信号线未成型", signal[5], 0, 1e-9)
	for i := 6; i < len(closes); i++ {
		assertClose(t, "信号线", signal[i], 1, 1e-9)
		assertClose(t, "柱体", histogram[i], 0, 1e-9)
	}
	// 暖机期全零
	for i := 0; i < 4; i++ {
		if macd[i] != 0 {
			t.Errorf("暖机期MACD应为0: macd[%d]=%v", i, macd[i])
		}
	}
}

func TestROC(t *testing.T) {
	// (121-100)/100*100 = 21, (133.1-110)/110*100 = 21
	out := ROC([]float64{100, 110, 121, 133.1}, 2)
	assertClose(t, "ROC", out[2], 21, 1e-9)
	assertClose(t, "ROC", out[3], 21, 1e-6)
}

func TestROC_ZeroBase(t *testing.T) {
	out := ROC([]float64{0, 10}, 1)
	assertClose(t, "基准价为0", out[1], 0, 1e-9)
}

func TestOBV(t *testing.T) {
	closes := []float64{10, 11, 11, 9, 12}
	volumes := []float64{100, 200, 300, 400, 500}
	out := OBV(closes, volumes)
	expected := []float64{0, 200, 200, -200, 300}
	for i, want := range expected {
		assertClose(t, "OBV", out[i], want, 1e-9)
	}
}
