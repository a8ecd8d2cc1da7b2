package fraud

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestVelocityBurstDetected(t *testing.T) {
	engine, store := newTestEngine(t, &stubRemote{})
	base := time.Now().UnixMilli()
	seedAt(t, store, "Burst000001", base-5000)
	seedAt(t, store, "Burst000002", base-3000)
	seedAt(t, store, "Burst000003", base-1000)

	result := engine.CheckVelocity(context.Background())
	if !result.Suspicious {
		t.Fatal("数秒内三次提交应判定为可疑")
	}
	if !strings.Contains(result.Reason, "frequency") {
		t.Fatalf("应报告高频提交，实际 %q", result.Reason)
	}
}

func TestVelocitySparseIrregularHistoryIsClean(t *testing.T) {
	engine, store := newTestEngine(t, &stubRemote{})
	seedRecord(t, store, "Sparse00001", 50*time.Hour)
	seedRecord(t, store, "Sparse00002", 26*time.Hour)
	seedRecord(t, store, "Sparse00003", 5*time.Hour)

	result := engine.CheckVelocity(context.Background())
	if result.Suspicious {
		t.Fatalf("稀疏且不规则的历史不应触发: %+v", result)
	}
}

func TestVelocityUniformIntervalsFlagAutomation(t *testing.T) {
	engine, store := newTestEngine(t, &stubRemote{})
	base := time.Now().UnixMilli()
	// 间隔精确到毫秒级一致，真人做不到
	seedAt(t, store, "Robot000001", base-2*3600000)
	seedAt(t, store, "Robot000002", base-3600000)
	seedAt(t, store, "Robot000003", base)

	result := engine.CheckVelocity(context.Background())
	if !result.Suspicious {
		t.Fatal("等间隔提交应判定为自动化")
	}
	if !strings.Contains(result.Reason, "Automated submission pattern") {
		t.Fatalf("应报告自动化模式，实际 %q", result.Reason)
	}
}

func TestVelocityVaryingIntervalsNotFlagged(t *testing.T) {
	engine, store := newTestEngine(t, &stubRemote{})
	base := time.Now().UnixMilli()
	// 间隔 55 分钟与 72 分钟，明显不均匀
	seedAt(t, store, "Human000001", base-(55+72)*60000)
	seedAt(t, store, "Human000002", base-72*60000)
	seedAt(t, store, "Human000003", base)

	result := engine.CheckVelocity(context.Background())
	if result.Suspicious {
		t.Fatalf("不均匀间隔不应触发: %+v", result)
	}
}

func TestVelocitySingleRecordIsClean(t *testing.T) {
	engine, store := newTestEngine(t, &stubRemote{})
	seedRecord(t, store, "Single00001", time.Hour)

	result := engine.CheckVelocity(context.Background())
	if result.Suspicious {
		t.Fatalf("单条记录不应触发: %+v", result)
	}
}
