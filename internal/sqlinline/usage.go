package sqlinline

const QInsertUsageEvent = `--sql 6c1db91a-6c06-41de-aeeb-ed6284ebae1a
insert into usage_events (id, request_id, module, outcome, latency_ms, created_at, properties)
values (gen_random_uuid(), nullif($1::text, ''), $2::text, $3::text, $4::int, now(), coalesce($5::jsonb, '{}'::jsonb));
`

const QUsageSummary = `--sql e1ead728-00e2-4070-a420-2aa01f1220e2
select
  module,
  count(*) as total,
  count(*) filter (where outcome = 'ok') as ok,
  count(*) filter (where outcome = 'refused') as refused,
  count(*) filter (where outcome = 'unstructured') as unstructured,
  count(*) filter (where outcome = 'failed') as failed,
  count(*) filter (where created_at > now() - interval '24 hours') as last24
from usage_events
group by module
order by module;
`
